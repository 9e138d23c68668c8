package config

import "net/url"

// Redacted returns a copy of c that is safe to log: the password in the
// Redis URL is masked.
func (c StructuredConfig) Redacted() StructuredConfig {
	c.Storage.Redis.URL = redactURL(c.Storage.Redis.URL)
	return c
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		// unparseable URLs may still carry credentials
		return "<redacted>"
	}
	return u.Redacted()
}
