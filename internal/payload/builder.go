package payload

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/catalog"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/domains"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
)

// Precondition sentinels. The executor reports these as "blocked" entries;
// they self-heal once the upstream handler produces the missing state.
var (
	ErrNoDomainFound     = errors.New("payload: no domain found for site")
	ErrNoVerifiedDomain  = errors.New("payload: no verified domain for site")
	ErrNoActiveCDNDomain = errors.New("payload: no active domain with a CDN zone")
	ErrNoPrimaryDomain   = errors.New("payload: site has no primary domain")
	ErrNoSearchConsole   = errors.New("payload: search console property not registered")
)

const (
	codeNoDomainFound     = "NO_DOMAIN_FOUND"
	codeNoVerifiedDomain  = "NO_VERIFIED_DOMAIN"
	codeNoActiveCDNDomain = "NO_ACTIVE_CDN_DOMAIN"
	codeNoPrimaryDomain   = "NO_PRIMARY_DOMAIN"
	codeNoSearchConsole   = "NO_SEARCH_CONSOLE_PROPERTY"
)

// IsPrecondition reports whether err is a payload precondition failure, as
// opposed to a programming or store error.
func IsPrecondition(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// Build derives the handler input parameters for one task type from already
// loaded site and domain state. It is a pure function: no I/O, no clock.
func Build(site *sites.Site, domainList []*domains.Domain, t catalog.Type) (map[string]any, error) {
	if site == nil {
		return nil, errors.New("payload: site is nil")
	}

	switch t {
	case catalog.TypeContentGenerate:
		return contentGeneratePayload(site), nil

	case catalog.TypeDomainRegister:
		return domainRegisterPayload(site), nil

	case catalog.TypeDomainVerify:
		// Prefer the oldest unverified domain; if every domain is already
		// verified fall back to the most recent one and rely on the
		// verification handler being idempotent.
		target := domains.FirstUnverified(domainList)
		if target == nil {
			target = domains.MostRecent(domainList)
		}
		if target == nil {
			return nil, precondition(ErrNoDomainFound, codeNoDomainFound)
		}
		return map[string]any{
			"site_id":   site.ID.String(),
			"domain_id": target.ID.String(),
			"method":    "dns_txt",
		}, nil

	case catalog.TypeDNSConfigure:
		target := domains.MostRecentlyVerified(domainList)
		if target == nil {
			return nil, precondition(ErrNoVerifiedDomain, codeNoVerifiedDomain)
		}
		params := map[string]any{
			"site_id":   site.ID.String(),
			"domain_id": target.ID.String(),
			"hostname":  target.Hostname,
		}
		if target.CDNZoneID != nil {
			params["cdn_zone_id"] = *target.CDNZoneID
		}
		return params, nil

	case catalog.TypeSSLProvision:
		target := domains.MostRecentlyVerified(domainList)
		if target == nil {
			return nil, precondition(ErrNoVerifiedDomain, codeNoVerifiedDomain)
		}
		return map[string]any{
			"site_id":   site.ID.String(),
			"domain_id": target.ID.String(),
			"provider":  sslProviderFor(target.RegistrarID),
		}, nil

	case catalog.TypeSearchConsoleSetup, catalog.TypeSearchConsoleVerify:
		target := domains.FirstActiveWithZone(domainList)
		if target == nil {
			return nil, precondition(ErrNoActiveCDNDomain, codeNoActiveCDNDomain)
		}
		return map[string]any{
			"site_id":     site.ID.String(),
			"domain_id":   target.ID.String(),
			"cdn_zone_id": *target.CDNZoneID,
			"site_url":    "https://" + target.Hostname + "/",
		}, nil

	case catalog.TypeSearchConsoleSync:
		if site.SearchConsoleURL == nil || *site.SearchConsoleURL == "" {
			return nil, precondition(ErrNoSearchConsole, codeNoSearchConsole)
		}
		return map[string]any{
			"site_id":  site.ID.String(),
			"site_url": *site.SearchConsoleURL,
		}, nil

	case catalog.TypeAnalyticsSetup:
		target := domains.MostRecentlyVerified(domainList)
		if target == nil {
			return nil, precondition(ErrNoVerifiedDomain, codeNoVerifiedDomain)
		}
		return map[string]any{
			"site_id":   site.ID.String(),
			"domain_id": target.ID.String(),
			"hostname":  target.Hostname,
		}, nil

	case catalog.TypeSiteDeploy:
		if site.PrimaryDomain == nil || *site.PrimaryDomain == "" {
			return nil, precondition(ErrNoPrimaryDomain, codeNoPrimaryDomain)
		}
		return map[string]any{
			"site_id":        site.ID.String(),
			"primary_domain": *site.PrimaryDomain,
		}, nil

	default:
		return map[string]any{"site_id": site.ID.String()}, nil
	}
}

func precondition(err error, code string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).WithTextCode(code)
}

// contentGeneratePayload seeds destination/category hints from the homepage
// config so the generation handler never runs without location context.
func contentGeneratePayload(site *sites.Site) map[string]any {
	params := map[string]any{
		"site_id":     site.ID.String(),
		"destination": "general",
		"category":    "general",
	}
	for _, key := range []string{"destination", "location", "city"} {
		if v := stringValue(site.HomepageConfig, key); v != "" {
			params["destination"] = v
			break
		}
	}
	for _, key := range []string{"category", "niche", "vertical"} {
		if v := stringValue(site.HomepageConfig, key); v != "" {
			params["category"] = v
			break
		}
	}
	return params
}

func domainRegisterPayload(site *sites.Site) map[string]any {
	params := map[string]any{"site_id": site.ID.String()}
	if suggested, err := slug.Normalize(site.Name); err == nil && suggested != "" {
		params["suggested_hostname"] = suggested + ".com"
	}
	return params
}

// sslProviderFor maps a registrar to the certificate provider its zones
// integrate with. Unknown registrars fall back to Let's Encrypt.
func sslProviderFor(registrarID string) string {
	id := strings.ToLower(strings.TrimSpace(registrarID))
	switch {
	case strings.HasPrefix(id, "cloudflare"):
		return "cloudflare"
	case strings.HasPrefix(id, "route53"), strings.HasPrefix(id, "aws"):
		return "acm"
	default:
		return "lets_encrypt"
	}
}

func stringValue(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
