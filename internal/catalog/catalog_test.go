package catalog

import "testing"

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
}

func TestRoadmapIsTopologicallyOrdered(t *testing.T) {
	position := map[Type]int{}
	for i, task := range Roadmap() {
		position[task] = i
	}
	for task, pos := range position {
		for _, dep := range Dependencies(task) {
			depPos, ok := position[dep]
			if !ok {
				t.Fatalf("%s depends on %s which is not in the roadmap", task, dep)
			}
			if depPos >= pos {
				t.Fatalf("%s (pos %d) ordered before its dependency %s (pos %d)", task, pos, dep, depPos)
			}
		}
	}
}

func TestRoadmapShape(t *testing.T) {
	order := Roadmap()
	if len(order) != 14 {
		t.Fatalf("expected 14 roadmap types, got %d", len(order))
	}
	if order[0] != TypeContentGenerate {
		t.Fatalf("expected content_generate first, got %s", order[0])
	}
	if order[len(order)-1] != TypePostLaunchAnalysis {
		t.Fatalf("expected post_launch_analysis last, got %s", order[len(order)-1])
	}

	var roots []Type
	for _, task := range order {
		if len(Dependencies(task)) == 0 {
			roots = append(roots, task)
		}
	}
	if len(roots) != 2 {
		t.Fatalf("expected exactly two zero-dependency roadmap types, got %v", roots)
	}
}

func TestDependencies(t *testing.T) {
	deps := Dependencies(TypeSiteDeploy)
	if len(deps) != 2 {
		t.Fatalf("expected two deploy dependencies, got %v", deps)
	}
	want := map[Type]bool{TypeContentReview: true, TypeSSLProvision: true}
	for _, dep := range deps {
		if !want[dep] {
			t.Fatalf("unexpected deploy dependency %s", dep)
		}
	}

	if got := Dependencies(TypeContentGenerate); got != nil {
		t.Fatalf("expected no dependencies for content_generate, got %v", got)
	}
	if got := Dependencies(TypeUptimeCheck); got != nil {
		t.Fatalf("expected no dependencies for maintenance type, got %v", got)
	}
}

func TestPhaseAndMembership(t *testing.T) {
	if PhaseOf(TypeSSLProvision) != PhaseDomain {
		t.Fatalf("ssl_provision should be in the domain phase")
	}
	if !IsRoadmap(TypeSearchConsoleSync) {
		t.Fatalf("search_console_sync should be a roadmap type")
	}
	if IsRoadmap(TypeCachePurge) {
		t.Fatalf("cache_purge should not be a roadmap type")
	}
	if !Known(TypeAdCreativeGenerate) {
		t.Fatalf("ad_creative_generate should be declared")
	}
	if Known(Type("bogus")) {
		t.Fatalf("bogus type should not be declared")
	}
}
