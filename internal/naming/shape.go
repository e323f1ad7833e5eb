package naming

import "analytics-codegen/internal/resolve"

//go:generate go tool stringer -type=ParameterShape -linecomment

// ParameterShape selects the signature of a generated function.
type ParameterShape int

const (
	NoParameters              ParameterShape = iota // no-parameters
	DetailsOnly                                     // details-only
	AdvertisementDetails                            // advertisement+details
	AdvertisementOnly                               // advertisement-only
	LabelDetails                                    // label+details
	LabelOnly                                       // label-only
	AdvertisementLabel                              // advertisement+label
	AdvertisementLabelDetails                       // advertisement+label+details
)

// ShapeOf returns the signature shape of spec.
func ShapeOf(spec resolve.EventSpec) ParameterShape {
	ad := spec.Advertisement
	label := spec.Label.IsFree()
	details := spec.HasParameters()

	switch {
	case ad && label && details:
		return AdvertisementLabelDetails
	case ad && label:
		return AdvertisementLabel
	case ad && details:
		return AdvertisementDetails
	case ad:
		return AdvertisementOnly
	case label && details:
		return LabelDetails
	case label:
		return LabelOnly
	case details:
		return DetailsOnly
	default:
		return NoParameters
	}
}

// NeedsAdvertisement reports whether the signature takes an advertisement.
func (s ParameterShape) NeedsAdvertisement() bool {
	return s == AdvertisementDetails || s == AdvertisementOnly ||
		s == AdvertisementLabel || s == AdvertisementLabelDetails
}

// NeedsLabel reports whether the signature takes a label.
func (s ParameterShape) NeedsLabel() bool {
	return s == LabelDetails || s == LabelOnly ||
		s == AdvertisementLabel || s == AdvertisementLabelDetails
}

// NeedsDetails reports whether the signature takes detail values.
func (s ParameterShape) NeedsDetails() bool {
	return s == DetailsOnly || s == AdvertisementDetails ||
		s == LabelDetails || s == AdvertisementLabelDetails
}
