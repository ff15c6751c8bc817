package domain

// Metadata is the raw JSON payload stored on a media row. The keys in use
// depend on the row's purpose; the typed accessors below validate the shape
// at the boundary so the rest of the code never does untyped lookups.
type Metadata map[string]any

const (
	metaViewpoint     = "viewpoint"
	metaFromViewpoint = "from_viewpoint"
	metaToViewpoint   = "to_viewpoint"
	metaName          = "name"
)

// GalleryMeta is the payload carried by gallery-purpose media inside a tour
// layer: the panorama's viewpoint and an optional display name.
type GalleryMeta struct {
	Viewpoint string
	Name      string
}

// HotspotMeta is the payload carried by hotspot-purpose media inside a tour
// layer.
type HotspotMeta struct {
	Viewpoint string
}

// TransitionMeta links two viewpoints with a directed video clip.
type TransitionMeta struct {
	FromViewpoint string
	ToViewpoint   string
}

func (m Metadata) str(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Gallery decodes the metadata as a gallery payload. ok is false when the
// viewpoint is missing; the name is optional.
func (m Metadata) Gallery() (GalleryMeta, bool) {
	vp, ok := m.str(metaViewpoint)
	if !ok {
		return GalleryMeta{}, false
	}
	name, _ := m.str(metaName)
	return GalleryMeta{Viewpoint: vp, Name: name}, true
}

// Hotspot decodes the metadata as a hotspot payload.
func (m Metadata) Hotspot() (HotspotMeta, bool) {
	vp, ok := m.str(metaViewpoint)
	if !ok {
		return HotspotMeta{}, false
	}
	return HotspotMeta{Viewpoint: vp}, true
}

// Transition decodes the metadata as a transition payload. Both endpoints
// are required; rows failing this are skipped by the tour resolver.
func (m Metadata) Transition() (TransitionMeta, bool) {
	from, ok := m.str(metaFromViewpoint)
	if !ok {
		return TransitionMeta{}, false
	}
	to, ok := m.str(metaToViewpoint)
	if !ok {
		return TransitionMeta{}, false
	}
	return TransitionMeta{FromViewpoint: from, ToViewpoint: to}, true
}

// NewGalleryMetadata builds the stored shape for a gallery upload.
func NewGalleryMetadata(viewpoint, name string) Metadata {
	md := Metadata{metaViewpoint: viewpoint}
	if name != "" {
		md[metaName] = name
	}
	return md
}

// NewHotspotMetadata builds the stored shape for a hotspot upload.
func NewHotspotMetadata(viewpoint string) Metadata {
	return Metadata{metaViewpoint: viewpoint}
}

// NewTransitionMetadata builds the stored shape for a transition upload.
func NewTransitionMetadata(from, to string) Metadata {
	return Metadata{metaFromViewpoint: from, metaToViewpoint: to}
}
