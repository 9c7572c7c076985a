// Package distribution resolves the protocol, host and cloud name prefix of a
// delivery URL.
package distribution

import (
	"hash/crc32"
	"strconv"
	"strings"

	cerrors "cldurl/internal/errors"
)

// Hosts of the shared delivery network
const (
	SharedHost = "res.cloudinary.com"
	// LegacySharedHost is the retired Akamai host, treated as unset
	LegacySharedHost = "cloudinary-a.akamaihd.net"
	hostSuffix       = ".cloudinary.com"
)

// Input holds the settings that influence the host
type Input struct {
	CloudName   string
	Secure      bool
	PrivateCDN  bool
	CNAME       string
	SecureCNAME string

	CDNSubdomain bool
	// SecureCDNSubdomain nil means not set; it then follows CDNSubdomain on the shared host
	SecureCDNSubdomain *bool
}

// Shard picks one of five sub-domains from the source path
func Shard(source string) int {
	sum := int64(crc32.ChecksumIEEE([]byte(source)))
	return int(((sum%5)+5)%5 + 1)
}

// Resolver computes distribution prefixes for one configuration
type Resolver struct {
	in Input
}

// NewResolver copies in into a resolver
func NewResolver(in Input) Resolver {
	if in.SecureCDNSubdomain != nil {
		v := *in.SecureCDNSubdomain
		in.SecureCDNSubdomain = &v
	}
	return Resolver{in: in}
}

// Resolve returns "<protocol>://<host>[/<cloud_name>]" for source. A cloud
// name starting with "/" addresses a local proxy and yields "/res<cloud_name>".
func (r Resolver) Resolve(source string) (string, error) {
	in := r.in
	if in.CloudName == "" {
		return "", cerrors.MissingCloudName()
	}
	if strings.HasPrefix(in.CloudName, "/") {
		return "/res" + in.CloudName, nil
	}

	shard := strconv.Itoa(Shard(source))
	shared := !in.PrivateCDN

	var prefix string
	switch {
	case in.Secure:
		host := in.SecureCNAME
		if host == "" || host == LegacySharedHost {
			if in.PrivateCDN {
				host = in.CloudName + "-" + SharedHost
			} else {
				host = SharedHost
			}
		}
		shared = shared || host == SharedHost

		sharded := in.SecureCDNSubdomain != nil && *in.SecureCDNSubdomain
		if in.SecureCDNSubdomain == nil && shared {
			sharded = in.CDNSubdomain
		}
		if sharded {
			host = strings.Replace(host, SharedHost, "res-"+shard+hostSuffix, 1)
		}
		prefix = "https://" + host

	case in.CNAME != "":
		sub := ""
		if in.CDNSubdomain {
			sub = "a" + shard + "."
		}
		prefix = "http://" + sub + in.CNAME

	default:
		sub := "res"
		if in.PrivateCDN {
			sub = in.CloudName + "-res"
		}
		if in.CDNSubdomain {
			sub += "-" + shard
		}
		prefix = "http://" + sub + hostSuffix
	}

	if shared {
		prefix += "/" + in.CloudName
	}
	return prefix, nil
}
