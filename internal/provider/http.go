package provider

// HTTPProvider is a self-hosted endpoint speaking the plain {"prompt": ...} protocol.
// The API key is optional and sent as a bearer token when present.
type HTTPProvider struct{}

func (p *HTTPProvider) Name() string {
	return ProviderHTTP
}

func (p *HTTPProvider) DisplayName() string {
	return "Custom HTTP endpoint"
}

func (p *HTTPProvider) RequiresAPIKey() bool {
	return false
}

func (p *HTTPProvider) APIKeyURL() string {
	return ""
}

func (p *HTTPProvider) ValidateAPIKey(key string) bool {
	return true
}

func (p *HTTPProvider) RequiresEndpoint() bool {
	return true
}

func (p *HTTPProvider) DefaultModel() string {
	return ""
}

func (p *HTTPProvider) Models() []Model {
	return nil
}
