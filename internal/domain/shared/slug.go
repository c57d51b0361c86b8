package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// SlugKind identifies an addressable entity type in the slug registry.
type SlugKind string

const (
	SlugKindProperty          SlugKind = "property"
	SlugKindUnit              SlugKind = "unit"
	SlugKindRentalApplication SlugKind = "rental_application"
	SlugKindUser              SlugKind = "user"
	SlugKindVendor            SlugKind = "vendor"
	SlugKindVendorType        SlugKind = "vendor_type"
	SlugKindWorkOrder         SlugKind = "work_order"
	SlugKindServiceRequest    SlugKind = "service_request"
	SlugKindPurchaseOrder     SlugKind = "purchase_order"
)

// slugPrefixes maps each sluggable kind to its static prefix. Leases are
// deliberately absent: a lease has no slug and asking for one is a
// programmer error.
var slugPrefixes = map[SlugKind]string{
	SlugKindProperty:          "prp",
	SlugKindUnit:              "unt",
	SlugKindRentalApplication: "rta",
	SlugKindUser:              "usr",
	SlugKindVendor:            "vnd",
	SlugKindVendorType:        "vnt",
	SlugKindWorkOrder:         "wko",
	SlugKindServiceRequest:    "sqr",
	SlugKindPurchaseOrder:     "pro",
}

// slugKindsByPrefix is the reverse of slugPrefixes for parsing.
var slugKindsByPrefix = func() map[string]SlugKind {
	m := make(map[string]SlugKind, len(slugPrefixes))
	for kind, prefix := range slugPrefixes {
		m[prefix] = kind
	}
	return m
}()

// EncodeSlug derives the stable external identifier "<prefix>-<seq>" for
// the given kind. Kinds without a registered prefix are not sluggable and
// return an error.
func EncodeSlug(kind SlugKind, seq int64) (string, error) {
	prefix, ok := slugPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("type %q is not sluggable", kind)
	}
	if seq <= 0 {
		return "", fmt.Errorf("slug sequence must be positive, got %d", seq)
	}
	return prefix + "-" + strconv.FormatInt(seq, 10), nil
}

// MustEncodeSlug is EncodeSlug that panics on misuse. Slugging an
// unregistered kind is a bug, not a runtime condition.
func MustEncodeSlug(kind SlugKind, seq int64) string {
	slug, err := EncodeSlug(kind, seq)
	if err != nil {
		panic(err)
	}
	return slug
}

// ParseSlug decodes a slug back into its kind and numeric key.
func ParseSlug(slug string) (SlugKind, int64, error) {
	prefix, num, found := strings.Cut(slug, "-")
	if !found {
		return "", 0, fmt.Errorf("malformed slug %q", slug)
	}
	kind, ok := slugKindsByPrefix[prefix]
	if !ok {
		return "", 0, fmt.Errorf("unknown slug prefix %q", prefix)
	}
	seq, err := strconv.ParseInt(num, 10, 64)
	if err != nil || seq <= 0 {
		return "", 0, fmt.Errorf("invalid slug sequence in %q", slug)
	}
	return kind, seq, nil
}

// IsSluggable reports whether the kind has a registered prefix.
func IsSluggable(kind SlugKind) bool {
	_, ok := slugPrefixes[kind]
	return ok
}
