package domains

// Selection helpers over an already-loaded domain list. The payload builder
// is a pure function, so picking happens here rather than in SQL.

// FirstUnverified returns the oldest domain without a verification timestamp,
// or nil when every domain is verified.
func FirstUnverified(records []*Domain) *Domain {
	for _, d := range records {
		if d != nil && !d.Verified() {
			return d
		}
	}
	return nil
}

// MostRecent returns the most recently registered domain, or nil.
func MostRecent(records []*Domain) *Domain {
	var out *Domain
	for _, d := range records {
		if d == nil {
			continue
		}
		if out == nil || d.RegisteredAt.After(out.RegisteredAt) {
			out = d
		}
	}
	return out
}

// MostRecentlyVerified returns the domain with the latest verification
// timestamp, or nil when none are verified.
func MostRecentlyVerified(records []*Domain) *Domain {
	var out *Domain
	for _, d := range records {
		if d == nil || !d.Verified() {
			continue
		}
		if out == nil || d.VerifiedAt.After(*out.VerifiedAt) {
			out = d
		}
	}
	return out
}

// FirstActiveWithZone returns the oldest active domain that has a CDN zone
// attached, or nil. Search-console handlers need the zone to place
// verification records.
func FirstActiveWithZone(records []*Domain) *Domain {
	for _, d := range records {
		if d == nil {
			continue
		}
		if Status(d.Status) == StatusActive && d.CDNZoneID != nil && *d.CDNZoneID != "" {
			return d
		}
	}
	return nil
}

// AnyActive reports whether at least one domain is serving.
func AnyActive(records []*Domain) bool {
	for _, d := range records {
		if d != nil && Status(d.Status) == StatusActive {
			return true
		}
	}
	return false
}

// AnyVerified reports whether at least one domain passed verification.
func AnyVerified(records []*Domain) bool {
	for _, d := range records {
		if d.Verified() {
			return true
		}
	}
	return false
}

// AnySSLEnabled reports whether at least one domain has a certificate.
func AnySSLEnabled(records []*Domain) bool {
	for _, d := range records {
		if d != nil && d.SSLEnabled {
			return true
		}
	}
	return false
}

// AnyWithZone reports whether at least one domain has a CDN zone attached.
func AnyWithZone(records []*Domain) bool {
	for _, d := range records {
		if d != nil && d.CDNZoneID != nil && *d.CDNZoneID != "" {
			return true
		}
	}
	return false
}
