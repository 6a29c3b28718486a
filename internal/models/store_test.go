package models

import (
	"encoding/json"
	"testing"
)

func TestStoreLookups(t *testing.T) {
	store := SeedStore()

	t.Run("by id", func(t *testing.T) {
		if store.ProfileByID("student1") == nil {
			t.Error("student1 not found")
		}
		if store.ProfileByID("ghost") != nil {
			t.Error("ghost resolved")
		}
		if store.ClassByID("class2") == nil {
			t.Error("class2 not found")
		}
	})

	t.Run("by email", func(t *testing.T) {
		p := store.ProfileByEmail("student2@demo")
		if p == nil || p.ID != "student2" {
			t.Errorf("unexpected profile: %+v", p)
		}
	})

	t.Run("grade pair lookup", func(t *testing.T) {
		g := store.GradeFor("assign1", "student2")
		if g == nil || g.Score == nil || *g.Score != 8 {
			t.Errorf("unexpected grade: %+v", g)
		}
		if store.GradeFor("assign2", "student3") != nil {
			t.Error("missing grade pair resolved")
		}
	})

	t.Run("enrollment check", func(t *testing.T) {
		if !store.IsEnrolled("student1", "class1") {
			t.Error("student1 should be enrolled in class1")
		}
		if store.IsEnrolled("student4", "class1") {
			t.Error("student4 should not be enrolled in class1")
		}
	})
}

func TestStoreSerialization(t *testing.T) {
	t.Run("nil score survives the codec", func(t *testing.T) {
		store := NewStore()
		store.Grades = []Grade{{ID: "g1", AssignmentID: "a1", StudentID: "s1", Score: nil}}

		data, err := json.Marshal(store)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var out Store
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Grades) != 1 || out.Grades[0].Score != nil {
			t.Errorf("ungraded marker lost: %+v", out.Grades)
		}
	})

	t.Run("empty store serializes every section", func(t *testing.T) {
		data, err := json.Marshal(NewStore())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var sections map[string]json.RawMessage
		if err := json.Unmarshal(data, &sections); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, key := range []string{"profiles", "classes", "enrollments", "categories", "assignments", "grades", "attendance", "studyMaterials"} {
			raw, ok := sections[key]
			if !ok {
				t.Errorf("section %q missing", key)
				continue
			}
			if string(raw) != "[]" {
				t.Errorf("section %q is %s, want []", key, raw)
			}
		}
	})

	t.Run("marshal copy detaches", func(t *testing.T) {
		store := SeedStore()
		copied, err := store.MarshalCopy()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		copied.Profiles[0].Name = "Changed"
		copied.Grades[0].Score = nil
		if store.Profiles[0].Name == "Changed" || store.Grades[0].Score == nil {
			t.Error("copy aliases the original")
		}
	})
}

func TestNormalize(t *testing.T) {
	var store Store
	store.Normalize()

	if store.Profiles == nil || store.Grades == nil || store.StudyMaterials == nil {
		t.Error("normalize left nil sections")
	}
}
