package asset

// Default asset and delivery types
const (
	DefaultAssetType    = "image"
	DefaultDeliveryType = "upload"
)

// Descriptor identifies one asset to deliver. Setters return modified copies.
type Descriptor struct {
	PublicID     string `json:"public_id"`
	AssetType    string `json:"asset_type"`
	DeliveryType string `json:"delivery_type"`
	Format       string `json:"format,omitempty"`
	Suffix       string `json:"suffix,omitempty"`
	// Extension is appended when no Format is set
	Extension string `json:"extension,omitempty"`
	Version   string `json:"version,omitempty"`
}

// New returns an image/upload descriptor for publicID
func New(publicID string) Descriptor {
	return Descriptor{
		PublicID:     publicID,
		AssetType:    DefaultAssetType,
		DeliveryType: DefaultDeliveryType,
	}
}

func (d Descriptor) WithPublicID(publicID string) Descriptor {
	d.PublicID = publicID
	return d
}

func (d Descriptor) WithAssetType(assetType string) Descriptor {
	d.AssetType = assetType
	return d
}

func (d Descriptor) WithDeliveryType(deliveryType string) Descriptor {
	d.DeliveryType = deliveryType
	return d
}

func (d Descriptor) WithFormat(format string) Descriptor {
	d.Format = format
	return d
}

// WithSuffix sets the SEO suffix appended after the public id
func (d Descriptor) WithSuffix(suffix string) Descriptor {
	d.Suffix = suffix
	return d
}

func (d Descriptor) WithExtension(extension string) Descriptor {
	d.Extension = extension
	return d
}

func (d Descriptor) WithVersion(version string) Descriptor {
	d.Version = version
	return d
}

// Kind returns the category of the descriptor's asset type
func (d Descriptor) Kind() Kind {
	k, _ := ParseKind(d.assetType())
	return k
}

// As converts the descriptor to another asset kind, keeping every other field
func (d Descriptor) As(kind Kind) Descriptor {
	d.AssetType = kind.AssetType()
	return d
}

// IsTransformable reports whether the URL carries a transformation segment
func (d Descriptor) IsTransformable() bool {
	return d.Kind().IsTransformable()
}

func (d Descriptor) assetType() string {
	if d.AssetType == "" {
		return DefaultAssetType
	}
	return d.AssetType
}

func (d Descriptor) deliveryType() string {
	if d.DeliveryType == "" {
		return DefaultDeliveryType
	}
	return d.DeliveryType
}
