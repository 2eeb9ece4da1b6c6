package catalog

import "fmt"

// entry declares the static facts about one task type. The executor never
// reads anything about a type beyond what is recorded here.
type entry struct {
	phase Phase
	deps  []Type
}

// roadmap is the fixed topological execution order for the launch pipeline.
// Every dependency of a type appears earlier in this slice; Validate enforces
// that so an accidental edit cannot silently deadlock every site.
var roadmap = []Type{
	TypeContentGenerate,
	TypeContentOptimize,
	TypeContentReview,
	TypeDomainRegister,
	TypeDomainVerify,
	TypeDNSConfigure,
	TypeSSLProvision,
	TypeSearchConsoleSetup,
	TypeSearchConsoleVerify,
	TypeSitemapGenerate,
	TypeSearchConsoleSync,
	TypeAnalyticsSetup,
	TypeSiteDeploy,
	TypePostLaunchAnalysis,
}

var entries = map[Type]entry{
	TypeContentGenerate: {phase: PhaseContent},
	TypeContentOptimize: {phase: PhaseContent, deps: []Type{TypeContentGenerate}},
	TypeContentReview:   {phase: PhaseContent, deps: []Type{TypeContentOptimize}},

	TypeDomainRegister: {phase: PhaseDomain},
	TypeDomainVerify:   {phase: PhaseDomain, deps: []Type{TypeDomainRegister}},
	TypeDNSConfigure:   {phase: PhaseDomain, deps: []Type{TypeDomainVerify}},
	TypeSSLProvision:   {phase: PhaseDomain, deps: []Type{TypeDomainVerify}},

	TypeSearchConsoleSetup:  {phase: PhaseSEO, deps: []Type{TypeDomainVerify, TypeSSLProvision}},
	TypeSearchConsoleVerify: {phase: PhaseSEO, deps: []Type{TypeSearchConsoleSetup}},
	TypeSitemapGenerate:     {phase: PhaseContent, deps: []Type{TypeContentReview}},
	TypeSearchConsoleSync:   {phase: PhaseSEO, deps: []Type{TypeSearchConsoleVerify, TypeSitemapGenerate}},
	TypeAnalyticsSetup:      {phase: PhaseSEO, deps: []Type{TypeDomainVerify}},

	TypeSiteDeploy:         {phase: PhaseDeployment, deps: []Type{TypeContentReview, TypeSSLProvision}},
	TypePostLaunchAnalysis: {phase: PhasePostLaunch, deps: []Type{TypeSiteDeploy}},

	TypeContentRefresh:      {phase: PhaseMaintenance},
	TypeContentExpand:       {phase: PhaseMaintenance},
	TypeContentTranslate:    {phase: PhaseMaintenance},
	TypeContentPrune:        {phase: PhaseMaintenance},
	TypeImageGenerate:       {phase: PhaseMaintenance},
	TypeImageOptimize:       {phase: PhaseMaintenance},
	TypeKeywordResearch:     {phase: PhaseMaintenance},
	TypeSEOAudit:            {phase: PhaseMaintenance},
	TypeBacklinkAudit:       {phase: PhaseMaintenance},
	TypeCompetitorScan:      {phase: PhaseMaintenance},
	TypeRankTracking:        {phase: PhaseMaintenance},
	TypeDomainRenew:         {phase: PhaseMaintenance},
	TypeDomainTransfer:      {phase: PhaseMaintenance},
	TypeSSLRenew:            {phase: PhaseMaintenance},
	TypeDNSAudit:            {phase: PhaseMaintenance},
	TypePerformanceAudit:    {phase: PhaseMaintenance},
	TypeUptimeCheck:         {phase: PhaseMaintenance},
	TypeBrokenLinkScan:      {phase: PhaseMaintenance},
	TypeLighthouseAudit:     {phase: PhaseMaintenance},
	TypeAdCampaignCreate:    {phase: PhaseMaintenance},
	TypeAdCampaignPause:     {phase: PhaseMaintenance},
	TypeAdCreativeGenerate:  {phase: PhaseMaintenance},
	TypeMonetizationSetup:   {phase: PhaseMaintenance},
	TypeAnalyticsReport:     {phase: PhasePostLaunch},
	TypeSearchConsoleResync: {phase: PhaseMaintenance},
	TypeSiteRedeploy:        {phase: PhaseDeployment},
	TypeSitePause:           {phase: PhaseMaintenance},
	TypeSiteArchive:         {phase: PhaseMaintenance},
	TypeSiteBackup:          {phase: PhaseMaintenance},
	TypeSiteRestore:         {phase: PhaseMaintenance},
	TypeCachePurge:          {phase: PhaseDeployment},
}

// Roadmap returns the launch pipeline in its fixed topological order. The
// returned slice is a copy; callers may reorder it freely.
func Roadmap() []Type {
	out := make([]Type, len(roadmap))
	copy(out, roadmap)
	return out
}

// Dependencies returns the declared dependency set for a task type. Unknown
// types have no dependencies.
func Dependencies(t Type) []Type {
	e, ok := entries[t]
	if !ok || len(e.deps) == 0 {
		return nil
	}
	out := make([]Type, len(e.deps))
	copy(out, e.deps)
	return out
}

// PhaseOf returns the lifecycle phase a task type belongs to.
func PhaseOf(t Type) Phase {
	if e, ok := entries[t]; ok {
		return e.phase
	}
	return PhaseMaintenance
}

// IsRoadmap reports whether the type is part of the standard launch roadmap.
func IsRoadmap(t Type) bool {
	for _, rt := range roadmap {
		if rt == t {
			return true
		}
	}
	return false
}

// Known reports whether the type is declared in the catalog at all.
func Known(t Type) bool {
	_, ok := entries[t]
	return ok
}

// Validate checks the static tables for internal consistency: every roadmap
// type is declared, dependencies reference declared roadmap types, the fixed
// order is a real topological order, and the dependency graph is acyclic.
func Validate() error {
	position := make(map[Type]int, len(roadmap))
	for i, t := range roadmap {
		if _, ok := entries[t]; !ok {
			return fmt.Errorf("catalog: roadmap type %q is not declared", t)
		}
		if _, dup := position[t]; dup {
			return fmt.Errorf("catalog: roadmap type %q appears twice", t)
		}
		position[t] = i
	}

	for t, e := range entries {
		for _, dep := range e.deps {
			if _, ok := entries[dep]; !ok {
				return fmt.Errorf("catalog: %q depends on undeclared type %q", t, dep)
			}
			tPos, tRoadmap := position[t]
			depPos, depRoadmap := position[dep]
			if tRoadmap && !depRoadmap {
				return fmt.Errorf("catalog: roadmap type %q depends on non-roadmap type %q", t, dep)
			}
			if tRoadmap && depPos >= tPos {
				return fmt.Errorf("catalog: %q is ordered before its dependency %q", t, dep)
			}
		}
	}

	return detectCycles()
}

func detectCycles() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[Type]int, len(entries))

	var visit func(t Type) error
	visit = func(t Type) error {
		switch state[t] {
		case visiting:
			return fmt.Errorf("catalog: dependency cycle through %q", t)
		case done:
			return nil
		}
		state[t] = visiting
		for _, dep := range entries[t].deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[t] = done
		return nil
	}

	for t := range entries {
		if err := visit(t); err != nil {
			return err
		}
	}
	return nil
}
