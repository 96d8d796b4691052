package schema

import "slices"

// Section types known to the template.
const (
	TypeHero             = "hero"
	TypeUSPs             = "usps"
	TypeFeaturedListings = "featured-listings"
	TypeServices         = "services"
	TypeContent          = "content"
	TypeTrust            = "trust"
	TypeCTA              = "cta"
	TypeContact          = "contact"
	TypeAbout            = "about"
	TypeProcess          = "process"
	TypeDistricts        = "districts"
	TypeTestimonials     = "testimonials"
	TypeRating           = "rating"
	TypeTeam             = "team"
	TypeReferences       = "references"
	TypeBlog             = "blog"
	TypeFooter           = "footer"
)

var sectionTypes = []string{
	TypeHero,
	TypeUSPs,
	TypeFeaturedListings,
	TypeServices,
	TypeContent,
	TypeTrust,
	TypeCTA,
	TypeContact,
	TypeAbout,
	TypeProcess,
	TypeDistricts,
	TypeTestimonials,
	TypeRating,
	TypeTeam,
	TypeReferences,
	TypeBlog,
	TypeFooter,
}

// SectionTypes lists every accepted section type.
func SectionTypes() []string {
	return slices.Clone(sectionTypes)
}

func IsSectionType(t string) bool {
	return slices.Contains(sectionTypes, t)
}
