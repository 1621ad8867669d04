package pairid

// Element is the sink a Handler writes resolved attributes into. It is the
// only thing this package knows about the host's document model; what setting
// an attribute means there is the host's business.
type Element interface {
	// SetAttr assigns value to the named attribute.
	SetAttr(name, value string)
}

// Handler applies id bindings on behalf of a host binding layer.
//
// The host registers two handlers that differ only in the attribute they
// default to: NewIDHandler for elements that carry the id itself, and
// NewForHandler for labels that pair against it. Both share one Registry so
// their requests draw from the same entries.
//
// During an element's initialization the host calls Apply with the raw
// binding value, which may use any of the shorthand forms Resolve accepts.
type Handler struct {
	registry *Registry
	def      Attr
}

// NewIDHandler returns a Handler whose requests default to the "id"
// attribute.
func NewIDHandler(r *Registry) *Handler {
	return &Handler{registry: r, def: AttrID}
}

// NewForHandler returns a Handler whose requests default to the "for"
// attribute.
func NewForHandler(r *Registry) *Handler {
	return &Handler{registry: r, def: AttrFor}
}

// Default returns the attribute this handler resolves unnamed declarations
// to.
func (h *Handler) Default() Attr {
	return h.def
}

// Apply resolves value, requests the id, writes it into the resolved
// attribute on el, and returns it. On error nothing is written: either the
// attribute is set or the call fails outright.
func (h *Handler) Apply(el Element, value any) (string, error) {
	cfg, err := Resolve(value, h.def)
	if err != nil {
		return "", err
	}

	id, err := h.registry.Request(cfg)
	if err != nil {
		return "", err
	}

	el.SetAttr(string(cfg.Attr), id)
	return id, nil
}
