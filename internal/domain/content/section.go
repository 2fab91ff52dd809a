package content

// Type is the closed set of section tags. It selects both the admin editing
// form and the public component.
type Type string

const (
	TypeHero            Type = "hero"
	TypeTextBlock       Type = "texto-bloque"
	TypeClasses         Type = "clases"
	TypeNews            Type = "noticias"
	TypeContact         Type = "contacto"
	TypeDonations       Type = "donaciones"
	TypeHeader          Type = "header"
	TypeDonationSuccess Type = "donacion-exitosa"
)

// Known reports whether t has a payload struct of its own.
func (t Type) Known() bool {
	_, ok := bodyFactories[t]
	return ok
}

// Section is one visual content block of a page.
type Section struct {
	ID   string
	Type Type
	Body Body
}

// Body is the typed payload of a section. Every tag has exactly one
// implementation; tags outside the known set decode into *Unknown.
type Body interface {
	Kind() Type
	// parts returns pointers to the content and settings halves so the JSON
	// codec can fill and emit them without knowing the concrete type.
	parts() (content, settings any)
}

var bodyFactories = map[Type]func() Body{
	TypeHero:            func() Body { return &Hero{} },
	TypeTextBlock:       func() Body { return &TextBlock{} },
	TypeClasses:         func() Body { return &Classes{} },
	TypeNews:            func() Body { return &News{} },
	TypeContact:         func() Body { return &Contact{} },
	TypeDonations:       func() Body { return &Donations{} },
	TypeHeader:          func() Body { return &Header{} },
	TypeDonationSuccess: func() Body { return &DonationSuccess{} },
}

// NewBody returns an empty payload for t.
func NewBody(t Type) Body {
	if f, ok := bodyFactories[t]; ok {
		return f()
	}
	return &Unknown{Tag: t}
}

// New returns an empty section of type t.
func New(id string, t Type) Section {
	return Section{ID: id, Type: t, Body: NewBody(t)}
}

type Button struct {
	Text  string `json:"text"`
	Link  string `json:"link"`
	Style string `json:"style,omitempty"`
}

type Slide struct {
	ImageURL    string   `json:"image_url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Buttons     []Button `json:"buttons,omitempty"`
}

type HeroContent struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Slides      []Slide `json:"slides,omitempty"`
}

type HeroSettings struct {
	AutoplaySeconds int `json:"autoplay_seconds,omitempty"`
}

type Hero struct {
	Content  HeroContent
	Settings HeroSettings
}

func (*Hero) Kind() Type { return TypeHero }
func (b *Hero) parts() (any, any) { return &b.Content, &b.Settings }

type TextBlockContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Layouts for texto-bloque.
const (
	LayoutImageLeft  = "image-left"
	LayoutImageRight = "image-right"
)

type TextBlockSettings struct {
	Layout string `json:"layout,omitempty"`
}

type TextBlock struct {
	Content  TextBlockContent
	Settings TextBlockSettings
}

func (*TextBlock) Kind() Type { return TypeTextBlock }
func (b *TextBlock) parts() (any, any) { return &b.Content, &b.Settings }

type CollectionContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Layouts for collection sections.
const (
	LayoutSlider = "slider"
	LayoutGrid   = "grid"
)

type CollectionSettings struct {
	Layout string `json:"layout,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type Classes struct {
	Content  CollectionContent
	Settings CollectionSettings
}

func (*Classes) Kind() Type { return TypeClasses }
func (b *Classes) parts() (any, any) { return &b.Content, &b.Settings }

type News struct {
	Content  CollectionContent
	Settings CollectionSettings
}

func (*News) Kind() Type { return TypeNews }
func (b *News) parts() (any, any) { return &b.Content, &b.Settings }

type ContactContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	FormType    string `json:"form_type,omitempty"`
}

type ContactSettings struct {
	FormType string `json:"form_type,omitempty"`
}

type Contact struct {
	Content  ContactContent
	Settings ContactSettings
}

func (*Contact) Kind() Type { return TypeContact }
func (b *Contact) parts() (any, any) { return &b.Content, &b.Settings }

type DonationsContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type DonationsSettings struct {
	DefaultAmount Amount `json:"default_amount,omitempty"`
}

type Donations struct {
	Content  DonationsContent
	Settings DonationsSettings
}

func (*Donations) Kind() Type { return TypeDonations }
func (b *Donations) parts() (any, any) { return &b.Content, &b.Settings }

type HeaderContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type Header struct {
	Content  HeaderContent
	Settings map[string]any
}

func (*Header) Kind() Type { return TypeHeader }
func (b *Header) parts() (any, any) { return &b.Content, &b.Settings }

// DonationSuccess is self-contained; whatever content/settings it carries are
// preserved but never read.
type DonationSuccess struct {
	Content  map[string]any
	Settings map[string]any
}

func (*DonationSuccess) Kind() Type { return TypeDonationSuccess }
func (b *DonationSuccess) parts() (any, any) { return &b.Content, &b.Settings }

// Unknown keeps a section whose tag this build does not know, so that a
// publish never loses it. It renders nothing.
type Unknown struct {
	Tag      Type
	Content  map[string]any
	Settings map[string]any
}

func (b *Unknown) Kind() Type { return b.Tag }
func (b *Unknown) parts() (any, any) { return &b.Content, &b.Settings }
