package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"resumade/internal/resume"
)

func sampleContent() resume.Content {
	return resume.Content{
		PersonalInfo: resume.PersonalInfo{FullName: "Alice", Email: "alice@x.com"},
		Summary:      "Backend engineer.",
		Education:    []resume.Education{{School: "State University", Degree: "BSc"}},
		Experience:   []resume.WorkExperience{{Company: "Acme", Position: "Engineer"}},
		Skills:       []resume.Skill{{Name: "Go"}},
	}
}

func TestCreateResume_Validation(t *testing.T) {
	ctx := context.Background()
	resumes := NewResumeService(newTestDB(t))

	if _, err := resumes.Create(ctx, 0, "t", "minimal", sampleContent()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing user id, got %v", err)
	}
	if _, err := resumes.Create(ctx, 1, "t", "  ", sampleContent()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty template id, got %v", err)
	}
}

func TestCreateResume_AssignsItemIDs(t *testing.T) {
	ctx := context.Background()
	resumes := NewResumeService(newTestDB(t))

	rec, err := resumes.Create(ctx, 1, "My resume", "minimal", sampleContent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected generated id")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	var content resume.Content
	if err := json.Unmarshal(rec.Content, &content); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if content.Education[0].ID == "" || content.Experience[0].ID == "" || content.Skills[0].ID == "" {
		t.Fatalf("expected list item ids to be assigned: %+v", content)
	}
}

func TestListByUser_Isolation(t *testing.T) {
	ctx := context.Background()
	resumes := NewResumeService(newTestDB(t))

	rec, err := resumes.Create(ctx, 1, "Alice resume", "minimal", sampleContent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := resumes.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list owner: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != rec.ID {
		t.Fatalf("expected owner to see 1 resume, got %d", len(mine))
	}

	other, err := resumes.ListByUser(ctx, 2)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected other user to see no resumes, got %d", len(other))
	}
}

func TestUpdateResume(t *testing.T) {
	ctx := context.Background()
	resumes := NewResumeService(newTestDB(t))

	rec, err := resumes.Create(ctx, 1, "Old title", "minimal", sampleContent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "New title"
	tmpl := "modern"
	updated, err := resumes.Update(ctx, rec.ID, ResumeUpdate{Title: &title, TemplateID: &tmpl})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || updated.TemplateID != tmpl {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if updated.UserID != rec.UserID {
		t.Fatalf("owner changed: %d -> %d", rec.UserID, updated.UserID)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", rec.CreatedAt, updated.CreatedAt)
	}

	t.Run("no fields", func(t *testing.T) {
		if _, err := resumes.Update(ctx, rec.ID, ResumeUpdate{}); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := resumes.Update(ctx, 9999, ResumeUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteResume_ThenGetNotFound(t *testing.T) {
	ctx := context.Background()
	resumes := NewResumeService(newTestDB(t))

	rec, err := resumes.Create(ctx, 1, "To delete", "minimal", sampleContent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := resumes.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := resumes.ResumeByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := resumes.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
