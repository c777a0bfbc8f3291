package resume

import "testing"

func TestEnsureItemIDs_AssignsMissing(t *testing.T) {
	c := Content{
		Education:  []Education{{School: "A"}, {School: "B"}},
		Experience: []WorkExperience{{Company: "C"}},
		Skills:     []Skill{{Name: "Go"}, {Name: "SQL"}},
	}

	c.EnsureItemIDs()

	seen := map[string]bool{}
	for _, e := range c.Education {
		if e.ID == "" {
			t.Fatal("education entry without id")
		}
		seen[e.ID] = true
	}
	for _, e := range c.Experience {
		if e.ID == "" {
			t.Fatal("experience entry without id")
		}
		seen[e.ID] = true
	}
	for _, s := range c.Skills {
		if s.ID == "" {
			t.Fatal("skill entry without id")
		}
		seen[s.ID] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct ids, got %d", len(seen))
	}
}

func TestEnsureItemIDs_StableAcrossEdits(t *testing.T) {
	c := Content{Skills: []Skill{{Name: "Go"}}}
	c.EnsureItemIDs()
	original := c.Skills[0].ID

	// 再次编辑：新增一项，旧项 ID 必须保持不变。
	c.Skills = append(c.Skills, Skill{Name: "SQL"})
	c.EnsureItemIDs()

	if c.Skills[0].ID != original {
		t.Fatalf("existing id changed: %q -> %q", original, c.Skills[0].ID)
	}
	if c.Skills[1].ID == "" || c.Skills[1].ID == original {
		t.Fatalf("new entry got invalid id %q", c.Skills[1].ID)
	}
}

func TestResolveTemplateID(t *testing.T) {
	cases := map[string]string{
		"minimal":      "minimal",
		"modern":       "modern",
		"classic":      "classic",
		"":             DefaultTemplateID,
		"no-such-tmpl": DefaultTemplateID,
	}
	for in, want := range cases {
		if got := ResolveTemplateID(in); got != want {
			t.Errorf("ResolveTemplateID(%q) = %q, want %q", in, got, want)
		}
	}
}
