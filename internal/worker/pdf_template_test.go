package worker

import (
	"strings"
	"testing"

	"resumade/internal/resume"
)

func sampleRenderData() renderData {
	return renderData{
		Title: "My resume",
		Content: resume.Content{
			PersonalInfo: resume.PersonalInfo{FullName: "Alice Chen", Email: "alice@x.com"},
			Summary:      "Backend engineer.",
			Experience: []resume.WorkExperience{
				{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "2023-06"},
			},
			Education: []resume.Education{
				{School: "State University", Degree: "BSc", Field: "CS"},
			},
			Skills: []resume.Skill{{Name: "Go", Level: "expert"}},
		},
	}
}

func TestRenderHTML_AllTemplates(t *testing.T) {
	for _, id := range []string{"minimal", "modern", "classic"} {
		html, err := RenderHTML(id, sampleRenderData())
		if err != nil {
			t.Fatalf("render %s: %v", id, err)
		}
		for _, want := range []string{"Alice Chen", "Acme", "State University", "Go"} {
			if !strings.Contains(html, want) {
				t.Fatalf("template %s output missing %q", id, want)
			}
		}
	}
}

func TestRenderHTML_UnknownTemplateFallsBack(t *testing.T) {
	html, err := RenderHTML("no-such-template", sampleRenderData())
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if !strings.Contains(html, "Alice Chen") {
		t.Fatal("fallback output missing resume data")
	}
}

func TestRenderHTML_EscapesUserContent(t *testing.T) {
	data := sampleRenderData()
	data.Content.Summary = `<script>alert("x")</script>`

	html, err := RenderHTML("minimal", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatal("user content rendered unescaped")
	}
}
