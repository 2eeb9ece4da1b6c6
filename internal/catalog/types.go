package catalog

// Type identifies one orchestration task handled through the job queue.
type Type string

// Launch roadmap task types. These carry dependency edges and are driven
// autonomously by the roadmap executor.
const (
	TypeContentGenerate     Type = "content_generate"
	TypeContentOptimize     Type = "content_optimize"
	TypeContentReview       Type = "content_review"
	TypeDomainRegister      Type = "domain_register"
	TypeDomainVerify        Type = "domain_verify"
	TypeDNSConfigure        Type = "dns_configure"
	TypeSSLProvision        Type = "ssl_provision"
	TypeSearchConsoleSetup  Type = "search_console_setup"
	TypeSearchConsoleVerify Type = "search_console_verify"
	TypeSitemapGenerate     Type = "sitemap_generate"
	TypeSearchConsoleSync   Type = "search_console_sync"
	TypeAnalyticsSetup      Type = "analytics_setup"
	TypeSiteDeploy          Type = "site_deploy"
	TypePostLaunchAnalysis  Type = "post_launch_analysis"
)

// Operational task types outside the launch roadmap. They are enqueued by
// other surfaces (admin actions, maintenance crons) and never gate a launch.
const (
	TypeContentRefresh      Type = "content_refresh"
	TypeContentExpand       Type = "content_expand"
	TypeContentTranslate    Type = "content_translate"
	TypeContentPrune        Type = "content_prune"
	TypeImageGenerate       Type = "image_generate"
	TypeImageOptimize       Type = "image_optimize"
	TypeKeywordResearch     Type = "keyword_research"
	TypeSEOAudit            Type = "seo_audit"
	TypeBacklinkAudit       Type = "backlink_audit"
	TypeCompetitorScan      Type = "competitor_scan"
	TypeRankTracking        Type = "rank_tracking"
	TypeDomainRenew         Type = "domain_renew"
	TypeDomainTransfer      Type = "domain_transfer"
	TypeSSLRenew            Type = "ssl_renew"
	TypeDNSAudit            Type = "dns_audit"
	TypePerformanceAudit    Type = "performance_audit"
	TypeUptimeCheck         Type = "uptime_check"
	TypeBrokenLinkScan      Type = "broken_link_scan"
	TypeLighthouseAudit     Type = "lighthouse_audit"
	TypeAdCampaignCreate    Type = "ad_campaign_create"
	TypeAdCampaignPause     Type = "ad_campaign_pause"
	TypeAdCreativeGenerate  Type = "ad_creative_generate"
	TypeMonetizationSetup   Type = "monetization_setup"
	TypeAnalyticsReport     Type = "analytics_report"
	TypeSearchConsoleResync Type = "search_console_resync"
	TypeSiteRedeploy        Type = "site_redeploy"
	TypeSitePause           Type = "site_pause"
	TypeSiteArchive         Type = "site_archive"
	TypeSiteBackup          Type = "site_backup"
	TypeSiteRestore         Type = "site_restore"
	TypeCachePurge          Type = "cache_purge"
)

func (t Type) String() string { return string(t) }

// Phase groups task types by lifecycle stage, mostly for operator views.
type Phase string

const (
	PhaseContent     Phase = "content"
	PhaseDomain      Phase = "domain"
	PhaseSEO         Phase = "seo"
	PhaseDeployment  Phase = "deployment"
	PhasePostLaunch  Phase = "post_launch"
	PhaseMaintenance Phase = "maintenance"
)
