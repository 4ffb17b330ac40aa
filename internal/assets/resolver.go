package assets

// AssetResolver layers a custom skin directory over the built-in skins. A
// skin file missing from the custom directory is read from the embedded set;
// any other failure, such as an invalid name, stops the lookup.
type AssetResolver struct {
	layers []AssetLoader // most specific first
}

// NewAssetResolver returns a resolver over the built-in skins, with dir
// layered on top when non-empty.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if dir != "" {
		custom, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if err == nil || !isNotFoundError(err) {
			return content, err
		}
	}
	return "", err
}

var _ AssetLoader = (*AssetResolver)(nil)
