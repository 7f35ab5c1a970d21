package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "scitree: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "scitree: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 4, 3, 1)

	want := "scitree: Predict: dimension mismatch on axis 1 (features). Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("DecisionTreeClassifier", "Predict")

	want := "scitree: DecisionTreeClassifier: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewInputShapeError(t *testing.T) {
	err := NewInputShapeError("training", 3, 4, 2)

	want := "scitree: input shape mismatch in training phase at row 3. Expected 4 features, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var shapeErr *InputShapeError
	if !As(err, &shapeErr) {
		t.Fatal("Error should be castable to *InputShapeError")
	}
	if shapeErr.Row != 3 {
		t.Errorf("Row = %d, want 3", shapeErr.Row)
	}
}

func TestMarkInvalidInput(t *testing.T) {
	base := NewValidationError("feature_names", "length does not match feature count", 3)
	marked := MarkInvalidInput(base)

	if !Is(marked, ErrInvalidInput) {
		t.Error("Expected marked error to match ErrInvalidInput")
	}

	var valErr *ValidationError
	if !As(marked, &valErr) {
		t.Error("Marked error should still be castable to *ValidationError")
	}

	if marked.Error() != base.Error() {
		t.Errorf("Marking should not change the message: %q vs %q", marked.Error(), base.Error())
	}

	if MarkInvalidInput(nil) != nil {
		t.Error("MarkInvalidInput(nil) should be nil")
	}

	if Is(base, ErrInvalidInput) {
		t.Error("Unmarked error should not match ErrInvalidInput")
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) {
		got = append(got, w)
	})
	defer SetWarningHandler(nil)

	Warn(NewUndefinedMetricWarning("accuracy", "no samples", 0))

	if len(got) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(got))
	}
	want := "'accuracy' is ill-defined and being set to 0.000000 due to no samples."
	if got[0].Error() != want {
		t.Errorf("Warning = %q, want %q", got[0].Error(), want)
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Fit", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
