package store

import (
	"sync"
	"testing"

	"medassist/pkg/domain"
)

func validInput() domain.AssessmentInput {
	return domain.AssessmentInput{
		PrimarySymptoms:    "severe headache and nausea for 2 days",
		AdditionalSymptoms: []string{"Nausea"},
		Duration:           "1-3-days",
		Severity:           7,
		Age:                34,
		Gender:             "female",
	}
}

func TestCreateAssessmentAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryStore()
	const n = 50

	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.CreateAssessment(validInput())
			if err != nil {
				t.Errorf("create assessment: %v", err)
				return
			}
			ids <- a.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	for want := 1; want <= n; want++ {
		if !seen[want] {
			t.Fatalf("id %d never assigned", want)
		}
	}
}

func TestCreateThenGetPreservesInput(t *testing.T) {
	s := NewMemoryStore()
	input := validInput()
	input.MedicalHistory = "asthma"

	created, err := s.CreateAssessment(input)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d, want 1", created.ID)
	}
	if created.AIResponse != nil {
		t.Fatal("new assessment should have nil AIResponse")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}

	got, ok, err := s.GetAssessment(created.ID)
	if err != nil || !ok {
		t.Fatalf("get assessment: ok=%v err=%v", ok, err)
	}
	if got.PrimarySymptoms != input.PrimarySymptoms {
		t.Fatalf("primarySymptoms = %q, want %q", got.PrimarySymptoms, input.PrimarySymptoms)
	}
	if len(got.AdditionalSymptoms) != 1 || got.AdditionalSymptoms[0] != "Nausea" {
		t.Fatalf("additionalSymptoms = %v", got.AdditionalSymptoms)
	}
	if got.Duration != input.Duration || got.Severity != input.Severity ||
		got.Age != input.Age || got.Gender != input.Gender || got.MedicalHistory != input.MedicalHistory {
		t.Fatalf("stored fields differ from input: %+v", got)
	}
}

func TestGetAssessmentMissing(t *testing.T) {
	s := NewMemoryStore()
	_, ok, err := s.GetAssessment(42)
	if err != nil {
		t.Fatalf("get assessment: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestUpdateAssessmentResult(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.CreateAssessment(validInput())
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	result := domain.AIResponse{
		PossibleConditions: []domain.DiagnosticResult{
			{Condition: "Migraine", Probability: 70, Severity: domain.SeverityMedium},
		},
		Recommendations:   []string{"rest"},
		EmergencyWarnings: []string{},
	}
	updated, ok, err := s.UpdateAssessmentResult(created.ID, result)
	if err != nil || !ok {
		t.Fatalf("update result: ok=%v err=%v", ok, err)
	}
	if updated.AIResponse == nil || updated.AIResponse.PossibleConditions[0].Condition != "Migraine" {
		t.Fatalf("unexpected aiResponse: %+v", updated.AIResponse)
	}
	if updated.PrimarySymptoms != created.PrimarySymptoms || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must leave input fields untouched")
	}

	// Re-diagnosis overwrites the prior result.
	second := domain.AIResponse{
		PossibleConditions: []domain.DiagnosticResult{
			{Condition: "Tension Headache", Probability: 60, Severity: domain.SeverityLow},
		},
	}
	updated, ok, err = s.UpdateAssessmentResult(created.ID, second)
	if err != nil || !ok {
		t.Fatalf("second update: ok=%v err=%v", ok, err)
	}
	if got := updated.AIResponse.PossibleConditions[0].Condition; got != "Tension Headache" {
		t.Fatalf("result not overwritten: %q", got)
	}

	if _, ok, _ := s.UpdateAssessmentResult(99, result); ok {
		t.Fatal("update on unknown id should report a miss")
	}
}

func TestListAssessmentsNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 3; i++ {
		if _, err := s.CreateAssessment(validInput()); err != nil {
			t.Fatalf("create assessment: %v", err)
		}
	}

	items, err := s.ListAssessments()
	if err != nil {
		t.Fatalf("list assessments: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []int{3, 2, 1} {
		if items[i].ID != want {
			t.Fatalf("items[%d].ID = %d, want %d", i, items[i].ID, want)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatal("list not sorted by createdAt descending")
		}
	}
}

func TestListMessagesOldestFirst(t *testing.T) {
	s := NewMemoryStore()
	for _, content := range []string{"first", "second", "third"} {
		if _, err := s.CreateMessage(content, domain.RoleUser); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}

	items, err := s.ListMessages()
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Content != want {
			t.Fatalf("items[%d].Content = %q, want %q", i, items[i].Content, want)
		}
		if items[i].ID != i+1 {
			t.Fatalf("items[%d].ID = %d, want %d", i, items[i].ID, i+1)
		}
	}
}

func TestMessageIDsIndependentFromAssessmentIDs(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.CreateAssessment(validInput()); err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	msg, err := s.CreateMessage("hello", domain.RoleUser)
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if msg.ID != 1 {
		t.Fatalf("message id = %d, want independent counter starting at 1", msg.ID)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.CreateAssessment(validInput())
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	if _, ok, err := s.UpdateAssessmentResult(created.ID, domain.AIResponse{
		PossibleConditions: []domain.DiagnosticResult{{Condition: "Migraine"}},
	}); err != nil || !ok {
		t.Fatalf("update result: ok=%v err=%v", ok, err)
	}

	got, _, _ := s.GetAssessment(created.ID)
	got.AdditionalSymptoms[0] = "mutated"
	got.AIResponse.PossibleConditions[0].Condition = "mutated"

	fresh, _, _ := s.GetAssessment(created.ID)
	if fresh.AdditionalSymptoms[0] != "Nausea" {
		t.Fatal("caller mutation leaked into stored additionalSymptoms")
	}
	if fresh.AIResponse.PossibleConditions[0].Condition != "Migraine" {
		t.Fatal("caller mutation leaked into stored aiResponse")
	}
}
