package domain

import "time"

// ProjectType selects the navigation experience for a project.
type ProjectType string

const (
	ProjectLots       ProjectType = "lots"
	ProjectBuilding   ProjectType = "building"
	ProjectMasterplan ProjectType = "masterplan"
)

// ProjectStatus gates public visibility. Only active projects are served
// on the public routes; enforcement happens in the HTTP layer.
type ProjectStatus string

const (
	ProjectDraft    ProjectStatus = "draft"
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Project is the root entity of an explorer experience. It is
// storage-agnostic and shared across repository and HTTP layers.
type Project struct {
	ID     string        `json:"id"`
	Slug   string        `json:"slug"`
	Name   string        `json:"name"`
	Type   ProjectType   `json:"type"`
	Status ProjectStatus `json:"status"`
	Scale  string        `json:"scale,omitempty"`

	// MaxDepth is the tree depth excluding the tour layer.
	MaxDepth int `json:"max_depth"`
	// LayerLabels names each depth of the tree, e.g. ["Zona", "Lote"].
	// LayerLabels[d] labels depth d.
	LayerLabels []string `json:"layer_labels,omitempty"`

	ContactPhone    string `json:"contact_phone,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	ContactWhatsApp string `json:"contact_whatsapp,omitempty"`

	ShowPrices  bool `json:"show_prices"`
	ShowGallery bool `json:"show_gallery"`
	ShowTour    bool `json:"show_tour"`
	ShowContact bool `json:"show_contact"`

	// HotspotElementIDs lists the clickable SVG element ids on the splash
	// overlay.
	HotspotElementIDs []string `json:"hotspot_element_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LayerType classifies a node in a project's hierarchy.
type LayerType string

const (
	LayerNeighborhood LayerType = "neighborhood"
	LayerZone         LayerType = "zone"
	LayerBlock        LayerType = "block"
	LayerTower        LayerType = "tower"
	LayerFloor        LayerType = "floor"
	LayerLot          LayerType = "lot"
	LayerUnit         LayerType = "unit"
	LayerTour         LayerType = "tour"
)

// IsLeaf reports whether the type carries commercial attributes and never
// has children.
func (t LayerType) IsLeaf() bool {
	return t == LayerLot || t == LayerUnit
}

// LayerStatus is the commercial status of a leaf layer.
type LayerStatus string

const (
	StatusAvailable    LayerStatus = "available"
	StatusReserved     LayerStatus = "reserved"
	StatusSold         LayerStatus = "sold"
	StatusNotAvailable LayerStatus = "not_available"
)

// Feature is a display row on a lot/unit sheet ({icon, text}).
type Feature struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Layer is a node in a project's navigable hierarchy. ParentID nil means
// root. Depth is the 0-based distance from a root and must equal
// parent.Depth+1 for non-roots.
type Layer struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Type      LayerType `json:"type"`
	Depth     int       `json:"depth"`
	SortOrder int       `json:"sort_order"`

	// Slug is the URL segment, unique among siblings.
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	// SVGElementID is the clickable shape id inside the parent's overlay.
	SVGElementID string `json:"svg_element_id,omitempty"`

	Status LayerStatus `json:"status,omitempty"`

	// Commercial/geometry fields, leaf types only.
	Area        *float64 `json:"area,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	FrontLength *float64 `json:"front_length,omitempty"`
	DepthLength *float64 `json:"depth_length,omitempty"`
	IsCorner    bool     `json:"is_corner,omitempty"`

	UnitTypeID *string   `json:"unit_type_id,omitempty"`
	Features   []Feature `json:"features,omitempty"`

	// Properties carries unit-specific free-form attributes (orientation,
	// floor_number, bedrooms, bathrooms, description, buyer contact).
	Properties map[string]any `json:"properties,omitempty"`

	BackgroundURL       string `json:"background_url,omitempty"`
	BackgroundMobileURL string `json:"background_mobile_url,omitempty"`
	OverlayURL          string `json:"overlay_url,omitempty"`
	OverlayMobileURL    string `json:"overlay_mobile_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MediaType distinguishes renderable media kinds.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaSVG   MediaType = "svg"
)

// MediaPurpose tags the role a media row plays within its owner scope.
type MediaPurpose string

const (
	PurposeBackground       MediaPurpose = "background"
	PurposeBackgroundMobile MediaPurpose = "background_mobile"
	PurposeLogo             MediaPurpose = "logo"
	PurposeLogoDeveloper    MediaPurpose = "logo_developer"
	PurposeOverlay          MediaPurpose = "overlay"
	PurposeOverlayMobile    MediaPurpose = "overlay_mobile"
	PurposeGallery          MediaPurpose = "gallery"
	PurposeHotspot          MediaPurpose = "hotspot"
	PurposeTransition       MediaPurpose = "transition"
	PurposeFichaMeasured    MediaPurpose = "ficha_measured"
	PurposeFichaFurnished   MediaPurpose = "ficha_furnished"
	PurposeThumbnail        MediaPurpose = "thumbnail"
)

// Media is an uploaded asset. Owner scope is exactly one of: project-only
// (LayerID and UnitTypeID both nil), a layer, or a unit type.
type Media struct {
	ID         string       `json:"id"`
	ProjectID  string       `json:"project_id"`
	LayerID    *string      `json:"layer_id,omitempty"`
	UnitTypeID *string      `json:"unit_type_id,omitempty"`
	Purpose    MediaPurpose `json:"purpose"`
	Type       MediaType    `json:"type"`
	URL        string       `json:"url"`
	StoragePath string      `json:"storage_path,omitempty"`
	SortOrder  int          `json:"sort_order"`
	Metadata   Metadata     `json:"metadata,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// IsProjectScoped reports whether the media belongs to the project root
// (no layer, no unit type).
func (m *Media) IsProjectScoped() bool {
	return m.LayerID == nil && m.UnitTypeID == nil
}

// UnitType is a reusable template referenced by unit layers.
type UnitType struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Area        float64 `json:"area"`
	AreaUnit    string  `json:"area_unit"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Description string  `json:"description,omitempty"`
}

// ExplorerPageData is the derived value consumed by every public view.
// CurrentLayer is nil at the project splash (no layer selected yet).
type ExplorerPageData struct {
	Project      *Project           `json:"project"`
	CurrentLayer *Layer             `json:"current_layer,omitempty"`
	CurrentPath  []string           `json:"current_path"`
	Children     []*Layer           `json:"children"`
	Siblings     []*Layer           `json:"siblings"`
	Media        []Media            `json:"media"`
	ChildrenMedia map[string][]Media `json:"children_media"`
	RootLayers   []*Layer           `json:"root_layers"`

	// UnitType and its media are resolved when the current layer is a unit
	// referencing a template.
	UnitType      *UnitType `json:"unit_type,omitempty"`
	UnitTypeMedia []Media   `json:"unit_type_media,omitempty"`
}

// Snapshot is the complete flat row set for one project, fetched in a
// single read per request. Every core transform operates on a snapshot and
// never issues further I/O.
type Snapshot struct {
	Project   Project    `json:"project"`
	Layers    []Layer    `json:"layers"`
	Media     []Media    `json:"media"`
	UnitTypes []UnitType `json:"unit_types"`
}

// SiblingExplorerBundle pre-resolves every sibling at the current depth so
// lots-type clients can switch siblings without a round trip.
type SiblingExplorerBundle struct {
	Current     *ExplorerPageData            `json:"current"`
	SiblingData map[string]*ExplorerPageData `json:"sibling_data"`
}
