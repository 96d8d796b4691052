package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const DefaultListingsLimit = 6

type HeroProps struct {
	Title           string      `json:"title" validate:"required,max=80"`
	Subtitle        string      `json:"subtitle,omitempty" validate:"omitempty,max=100"`
	Description     string      `json:"description,omitempty" validate:"omitempty,max=200"`
	Badge           *HeroBadge  `json:"badge,omitempty" validate:"omitempty"`
	CTA             *HeroCTA    `json:"cta,omitempty" validate:"omitempty"`
	Search          *HeroSearch `json:"search,omitempty" validate:"omitempty"`
	Stats           []Stat      `json:"stats,omitempty" validate:"omitempty,dive"`
	Image           string      `json:"image,omitempty" validate:"omitempty,url"`
	Video           string      `json:"video,omitempty" validate:"omitempty,url"`
	BackgroundImage string      `json:"backgroundImage,omitempty" validate:"omitempty,url"`
}

type HeroBadge struct {
	Icon string `json:"icon,omitempty"`
	Text string `json:"text" validate:"required,max=50"`
}

type HeroCTA struct {
	Primary   CTA  `json:"primary"`
	Secondary *CTA `json:"secondary,omitempty" validate:"omitempty"`
}

type HeroSearch struct {
	Enabled *bool    `json:"enabled" validate:"required"`
	Types   []string `json:"types" validate:"required"`
	Filters []string `json:"filters" validate:"required"`
}

type Stat struct {
	Value string `json:"value" validate:"required,max=20"`
	Label string `json:"label" validate:"required,max=50"`
}

type USPsProps struct {
	Items []USP `json:"items" validate:"min=2,max=6,dive"`
}

type USP struct {
	Icon        string `json:"icon" validate:"required"`
	Title       string `json:"title" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=100"`
}

type FeaturedListingsProps struct {
	Title    string  `json:"title" validate:"required,max=60"`
	Subtitle string  `json:"subtitle,omitempty" validate:"omitempty,max=120"`
	Limit    float64 `json:"limit" validate:"min=3,max=12"`
	Layout   string  `json:"layout" validate:"required,oneof=grid featured map"`
	CTA      *CTA    `json:"cta,omitempty" validate:"omitempty"`
}

func (p *FeaturedListingsProps) UnmarshalJSON(b []byte) error {
	type plain FeaturedListingsProps
	v := plain{Limit: DefaultListingsLimit}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = FeaturedListingsProps(v)
	return nil
}

type ServicesProps struct {
	Title    string           `json:"title" validate:"required,max=60"`
	Subtitle string           `json:"subtitle,omitempty" validate:"omitempty,max=120"`
	Label    string           `json:"label,omitempty" validate:"omitempty,max=50"`
	Items    []ServiceItem    `json:"items,omitempty" validate:"omitempty,min=2,max=8,dive"`
	Columns  []ServicesColumn `json:"columns,omitempty" validate:"omitempty,dive"`
}

type ServiceItem struct {
	Icon        string `json:"icon" validate:"required"`
	Title       string `json:"title" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=150"`
}

type ServicesColumn struct {
	Icon     string          `json:"icon" validate:"required"`
	Title    string          `json:"title" validate:"required,max=50"`
	Services []ColumnService `json:"services" validate:"required,dive"`
	CTA      *CTA            `json:"cta,omitempty" validate:"omitempty"`
}

type ColumnService struct {
	Icon        string `json:"icon" validate:"required"`
	Title       string `json:"title" validate:"required,max=80"`
	Description string `json:"description" validate:"required,max=200"`
}

type TrustProps struct {
	Title string `json:"title,omitempty" validate:"omitempty,max=60"`
	Stats []Stat `json:"stats" validate:"min=2,max=6,dive"`
}

type ContactProps struct {
	Title      string   `json:"title" validate:"required,max=60"`
	Subtitle   string   `json:"subtitle,omitempty" validate:"omitempty,max=120"`
	ShowMap    bool     `json:"showMap"`
	FormFields []string `json:"formFields" validate:"required,dive,oneof=name email phone message subject"`
}

type AboutProps struct {
	Label        string         `json:"label,omitempty" validate:"omitempty,max=50"`
	Title        string         `json:"title" validate:"required,max=80"`
	Subtitle     string         `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	Content      string         `json:"content" validate:"required"`
	Image        string         `json:"image,omitempty" validate:"omitempty,url"`
	ImageOverlay *ImageOverlay  `json:"imageOverlay,omitempty" validate:"omitempty"`
	Features     []AboutFeature `json:"features,omitempty" validate:"omitempty,dive"`
}

type ImageOverlay struct {
	Number string `json:"number" validate:"required,max=10"`
	Label  string `json:"label" validate:"required,max=30"`
}

type AboutFeature struct {
	Icon string `json:"icon" validate:"required"`
	Text string `json:"text" validate:"required,max=100"`
}

type DistrictsProps struct {
	Label    string     `json:"label,omitempty" validate:"omitempty,max=50"`
	Title    string     `json:"title" validate:"required,max=60"`
	Subtitle string     `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	Items    []District `json:"items" validate:"min=4,max=12,dive"`
}

type District struct {
	Name  string         `json:"name" validate:"required,max=50"`
	Count NumberOrString `json:"count" validate:"required"`
	Image string         `json:"image" validate:"required,url"`
}

type TestimonialsProps struct {
	Label    string        `json:"label,omitempty" validate:"omitempty,max=50"`
	Title    string        `json:"title" validate:"required,max=60"`
	Subtitle string        `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	Items    []Testimonial `json:"items" validate:"min=2,max=10,dive"`
}

type Testimonial struct {
	Text   string  `json:"text" validate:"required,max=500"`
	Author string  `json:"author" validate:"required,max=100"`
	Role   string  `json:"role,omitempty" validate:"omitempty,max=100"`
	Rating float64 `json:"rating" validate:"min=1,max=5"`
	Avatar string  `json:"avatar,omitempty"`
}

type RatingProps struct {
	Score      float64       `json:"score" validate:"min=1,max=5"`
	Count      *float64      `json:"count" validate:"required"`
	Source     string        `json:"source" validate:"required,max=50"`
	SourceIcon string        `json:"sourceIcon,omitempty"`
	Badges     []RatingBadge `json:"badges,omitempty" validate:"omitempty,dive"`
}

type RatingBadge struct {
	Icon     string `json:"icon" validate:"required"`
	Title    string `json:"title" validate:"required,max=50"`
	Subtitle string `json:"subtitle" validate:"required,max=50"`
}

type TeamProps struct {
	Label    string       `json:"label,omitempty" validate:"omitempty,max=50"`
	Title    string       `json:"title" validate:"required,max=60"`
	Subtitle string       `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	Members  []TeamMember `json:"members" validate:"min=1,max=20,dive"`
}

type TeamMember struct {
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,max=100"`
	Image    string `json:"image" validate:"required,url"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

type ReferencesProps struct {
	Label    string      `json:"label,omitempty" validate:"omitempty,max=50"`
	Title    string      `json:"title" validate:"required,max=60"`
	Subtitle string      `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	Items    []Reference `json:"items" validate:"min=2,max=12,dive"`
}

type Reference struct {
	Type     string          `json:"type" validate:"required,max=50"`
	Title    string          `json:"title" validate:"required,max=100"`
	Location string          `json:"location" validate:"required,max=100"`
	Image    string          `json:"image" validate:"required,url"`
	Status   string          `json:"status" validate:"required,max=30"`
	Stats    []ReferenceStat `json:"stats,omitempty" validate:"omitempty,dive"`
}

type ReferenceStat struct {
	Icon  string `json:"icon" validate:"required"`
	Value string `json:"value" validate:"required,max=30"`
}

type BlogProps struct {
	Label    string        `json:"label,omitempty" validate:"omitempty,max=50"`
	Title    string        `json:"title" validate:"required,max=60"`
	Subtitle string        `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	Featured *FeaturedPost `json:"featured,omitempty" validate:"omitempty"`
	Posts    []BlogPost    `json:"posts,omitempty" validate:"omitempty,dive"`
}

type FeaturedPost struct {
	Image    string `json:"image" validate:"required,url"`
	Category string `json:"category" validate:"required,max=30"`
	Date     string `json:"date" validate:"required"`
	Title    string `json:"title" validate:"required,max=100"`
	Excerpt  string `json:"excerpt" validate:"required,max=300"`
	Link     string `json:"link" validate:"required"`
}

type BlogPost struct {
	Image string `json:"image" validate:"required,url"`
	Title string `json:"title" validate:"required,max=100"`
	Date  string `json:"date" validate:"required"`
	Link  string `json:"link" validate:"required"`
}

type FooterProps struct {
	About     *FooterAbout   `json:"about,omitempty" validate:"omitempty"`
	Columns   []FooterColumn `json:"columns,omitempty" validate:"omitempty,dive"`
	Legal     []CTA          `json:"legal,omitempty" validate:"omitempty,dive"`
	Copyright string         `json:"copyright" validate:"required,max=100"`
}

type FooterAbout struct {
	Logo   string       `json:"logo,omitempty"`
	Text   string       `json:"text" validate:"required,max=300"`
	Social []SocialLink `json:"social,omitempty" validate:"omitempty,dive"`
}

type SocialLink struct {
	Platform string `json:"platform" validate:"required"`
	Icon     string `json:"icon" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

type FooterColumn struct {
	Title string       `json:"title" validate:"required,max=50"`
	Links []FooterLink `json:"links" validate:"required,dive"`
}

type FooterLink struct {
	Text string `json:"text" validate:"required,max=50"`
	Href string `json:"href" validate:"required"`
}

// NumberOrString holds a JSON value that may be either a number or a string,
// such as a district's listing count ("120+" or 120).
type NumberOrString struct {
	Number float64
	Text   string
	Kind   ValueKind
}

type ValueKind int

const (
	KindUnset ValueKind = iota
	KindNumber
	KindString
)

func (v *NumberOrString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return errors.New("expected number or string, got null")
	}
	if err := json.Unmarshal(b, &v.Text); err == nil {
		v.Kind = KindString
		return nil
	}
	if err := json.Unmarshal(b, &v.Number); err == nil {
		v.Kind = KindNumber
		return nil
	}
	return fmt.Errorf("expected number or string, got %s", b)
}

func (v NumberOrString) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Number)
	case KindString:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

func (v NumberOrString) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

var propsTypes = map[string]func() any{
	TypeHero:             func() any { return new(HeroProps) },
	TypeUSPs:             func() any { return new(USPsProps) },
	TypeFeaturedListings: func() any { return new(FeaturedListingsProps) },
	TypeServices:         func() any { return new(ServicesProps) },
	TypeTrust:            func() any { return new(TrustProps) },
	TypeContact:          func() any { return new(ContactProps) },
	TypeAbout:            func() any { return new(AboutProps) },
	TypeDistricts:        func() any { return new(DistrictsProps) },
	TypeTestimonials:     func() any { return new(TestimonialsProps) },
	TypeRating:           func() any { return new(RatingProps) },
	TypeTeam:             func() any { return new(TeamProps) },
	TypeReferences:       func() any { return new(ReferencesProps) },
	TypeBlog:             func() any { return new(BlogProps) },
	TypeFooter:           func() any { return new(FooterProps) },
}

// PropsFor returns a new, zero props struct pointer for sectionType. It
// reports false for types without a props schema.
func PropsFor(sectionType string) (any, bool) {
	mk, ok := propsTypes[sectionType]
	if !ok {
		return nil, false
	}
	return mk(), true
}
