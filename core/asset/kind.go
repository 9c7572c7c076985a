// Package asset describes a delivered asset and finalizes the asset type,
// source and version segments of its URL.
package asset

// Kind is the media category of an asset
type Kind int

const (
	KindImage Kind = iota
	KindVideo
	KindRaw
	// KindAuto lets the CDN detect the category
	KindAuto
)

var kindNames = map[Kind]string{
	KindImage: "image",
	KindVideo: "video",
	KindRaw:   "raw",
	KindAuto:  "auto",
}

// ParseKind maps an asset type name to a Kind. Unknown names are reported
// with ok false.
func ParseKind(assetType string) (Kind, bool) {
	for k, name := range kindNames {
		if name == assetType {
			return k, true
		}
	}
	return KindImage, false
}

// AssetType returns the URL name of the kind
func (k Kind) AssetType() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "image"
}

func (k Kind) String() string {
	return k.AssetType()
}

// IsTransformable reports whether a transformation segment applies to the kind
func (k Kind) IsTransformable() bool {
	return k != KindRaw
}
