package model

import (
	"reflect"
	"testing"
)

func TestOptionList(t *testing.T) {
	q := Question{Options: "A. First choice\n\n B. Second choice \nC"}
	got := q.OptionList()
	want := []Option{
		{Label: "A", Text: "First choice"},
		{Label: "B", Text: "Second choice"},
		{Label: "C", Text: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("OptionList = %v, want %v", got, want)
	}
}

func TestCorrectLabels(t *testing.T) {
	q := Question{CorrectAnswers: " A , C ,"}
	if got := q.CorrectLabels(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("CorrectLabels = %v", got)
	}
	if got := (Question{}).CorrectLabels(); got != nil {
		t.Fatalf("empty CorrectAnswers yields %v, want nil", got)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash := HashPassword(" secret ")
	if hash != HashPassword("secret") {
		t.Fatal("hash is not whitespace-insensitive")
	}
	if len(hash) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(hash))
	}
	if !VerifyPassword(hash, "secret") {
		t.Fatal("hash does not verify")
	}
	if VerifyPassword(hash, "other") {
		t.Fatal("wrong password verified")
	}
}

func TestRemainingRounds(t *testing.T) {
	for count, want := range map[int]int{0: 3, 1: 2, 3: 0, 5: 0} {
		state := ParticipantState{EditCount: count}
		if got := state.RemainingRounds(); got != want {
			t.Errorf("RemainingRounds with count %d = %d, want %d", count, got, want)
		}
	}
}
