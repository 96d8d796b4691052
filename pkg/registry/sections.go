package registry

// variant pairs a registry key with the component rendering it.
type variant struct {
	key       string
	component string
}

type sectionTable struct {
	typ      string
	dir      string
	variants []variant
}

// defaultTable mirrors src/utils/sectionRegistry.ts of the template. Key
// order is the order of the source object.
var defaultTable = []sectionTable{
	{"hero", "Hero", []variant{
		{"A", "HeroA"},
		{"B", "HeroB"},
		{"fullscreen-image", "HeroFullscreenImage"},
		{"split-text-image", "HeroSplitTextImage"},
		{"leadform-inline", "HeroLeadformInline"},
		{"slider", "HeroSlider"},
	}},
	{"usps", "USPs", []variant{
		{"A", "USPsA"},
	}},
	{"featured-listings", "Listings", []variant{
		{"A", "ListingsA"},
	}},
	{"services", "Services", []variant{
		{"A", "ServicesA"},
		{"B", "ServicesB"},
		{"icon-grid-3col", "ServicesIconGrid3Col"},
		{"card-grid-2col", "ServicesCardGrid2Col"},
		{"card-grid-4col", "ServicesCardGrid4Col"},
		{"list-alternating", "ServicesListAlternating"},
		{"process-hybrid", "ServicesProcessHybrid"},
	}},
	{"content", "Content", []variant{
		{"text-block", "ContentTextBlock"},
	}},
	{"trust", "Trust", []variant{
		{"A", "TrustA"},
		{"statistics", "TrustStatistics"},
		{"logo-grid", "TrustLogoGrid"},
		{"reviews-summary", "TrustReviewsSummary"},
		{"press-awards", "TrustPressAwards"},
	}},
	{"cta", "CTA", []variant{
		{"solid-background", "CTASolidBackground"},
		{"split-benefits", "CTASplitBenefits"},
		{"image-background", "CTAImageBackground"},
		{"modernisierungspaket", "CTAModernisierungspaket"},
		{"A", "CTASolidBackground"},
	}},
	{"contact", "Contact", []variant{
		{"A", "ContactA"},
		{"simple", "ContactSimple"},
		{"form", "ContactForm"},
		{"with-map", "ContactWithMap"},
		{"multi-office", "ContactMultiOffice"},
	}},
	{"about", "About", []variant{
		{"A", "AboutA"},
		{"B", "AboutB"},
		{"text-with-image", "AboutTextWithImage"},
		{"founder-story", "AboutFounderStory"},
		{"team-grid", "AboutTeamGrid"},
		{"values-cards", "AboutValuesCards"},
	}},
	{"process", "Process", []variant{
		{"step-icons", "ProcessStepIcons"},
		{"alternating", "ProcessAlternating"},
		{"timeline-compact", "ProcessTimelineCompact"},
		{"A", "ProcessStepIcons"},
	}},
	{"districts", "Districts", []variant{{"A", "DistrictsA"}}},
	{"testimonials", "Testimonials", []variant{{"A", "TestimonialsA"}}},
	{"rating", "Rating", []variant{{"A", "RatingA"}}},
	{"team", "Team", []variant{{"A", "TeamA"}}},
	{"references", "References", []variant{{"A", "ReferencesA"}}},
	{"blog", "Blog", []variant{{"A", "BlogA"}}},
	{"footer", "Footer", []variant{
		{"A", "FooterA"},
		{"multi-column", "FooterMultiColumn"},
		{"minimal", "FooterMinimal"},
	}},
}
