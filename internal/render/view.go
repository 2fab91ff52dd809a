package render

// View is the presentation model of one section. Exactly one of the payload
// pointers is set, matching Type.
type View struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Hero            *HeroView            `json:"hero,omitempty"`
	TextBlock       *TextBlockView       `json:"text_block,omitempty"`
	Cards           *CardsView           `json:"cards,omitempty"`
	Contact         *ContactView         `json:"contact,omitempty"`
	Donations       *DonationsView       `json:"donations,omitempty"`
	Header          *HeaderView          `json:"header,omitempty"`
	DonationSuccess *DonationSuccessView `json:"donation_success,omitempty"`
}

type ButtonView struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Style string `json:"style"`
}

type SlideView struct {
	ImageURL    string       `json:"image_url"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Buttons     []ButtonView `json:"buttons"`
}

type HeroView struct {
	Slides          []SlideView `json:"slides"`
	AutoplaySeconds int         `json:"autoplay_seconds"`
}

// Image sides for texto-bloque.
const (
	ImageLeft  = "left"
	ImageRight = "right"
)

type TextBlockView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Image       string `json:"image"`
}

// Card is the uniform shape classes and news are projected into.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Label       string `json:"label"`
	ImageURL    string `json:"image_url"`
	Slug        string `json:"slug"`
	Color       string `json:"color"`
}

type CardsView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Layout      string `json:"layout"`
	Cards       []Card `json:"cards"`
}

type ContactView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Form        string `json:"form"`
}

type DonationsView struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	DefaultAmount float64 `json:"default_amount"`
}

type HeaderView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type DonationSuccessView struct{}
