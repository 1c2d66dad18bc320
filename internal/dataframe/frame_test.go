package dataframe

import (
	"reflect"
	"testing"
	"time"
)

func TestKindInference(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"num", "flag", "when", "text", "mixed"},
		[][]string{
			{"1.5", "true", "2024-01-01", "hello", "1"},
			{"-2", "false", "2024-06-15", "world", "abc"},
			{"", "true", "", "x", "2"},
		},
	)

	want := []Kind{KindNumber, KindBool, KindTime, KindText, KindText}
	if got := frame.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kind inference mismatch.\nExpected: %v\nGot: %v", want, got)
	}

	// Empty cells become nulls, not zero values.
	if !frame.Row(2)[0].IsNull() {
		t.Error("Empty numeric cell should be null")
	}
	if !frame.Row(2)[2].IsNull() {
		t.Error("Empty timestamp cell should be null")
	}

	// Timestamp cells carry parsed times.
	ts, ok := frame.Row(0)[2].TimeValue()
	if !ok {
		t.Fatal("Expected a timestamp cell")
	}
	if ts.Year() != 2024 || ts.Month() != time.January {
		t.Errorf("Parsed wrong time: %v", ts)
	}
}

func TestMixedColumnDegradesToText(t *testing.T) {
	frame := NewFrameFromValues(
		[]string{"c"},
		[][]Value{
			{Number(1)},
			{String("two")},
			{Null()},
		},
	)
	if frame.Kinds()[0] != KindText {
		t.Errorf("Mixed column should degrade to text, got %v", frame.Kinds()[0])
	}
	// Cells keep their own rendering.
	if got := frame.Row(0)[0].Text(); got != "1" {
		t.Errorf("Expected '1', got %q", got)
	}
}

func TestNumericColumns(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"id", "name", "date"},
		[][]string{
			{"1", "a", "2020-01-01"},
			{"2", "b", "2020-01-02"},
		},
	)
	want := []string{"id", "date"}
	if got := frame.NumericColumns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected numeric columns %v, got %v", want, got)
	}
}

func TestFloatColumnsRowAligned(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"x", "y"},
		[][]string{
			{"1", "10"},
			{"2", ""}, // dropped: y missing
			{"3", "30"},
		},
	)
	cols, err := frame.FloatColumns([]string{"x", "y"})
	if err != nil {
		t.Fatalf("FloatColumns failed: %v", err)
	}
	if !reflect.DeepEqual(cols[0], []float64{1, 3}) {
		t.Errorf("x column mismatch: %v", cols[0])
	}
	if !reflect.DeepEqual(cols[1], []float64{10, 30}) {
		t.Errorf("y column mismatch: %v", cols[1])
	}
}

func TestTextColumnSkipsNulls(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"city"},
		[][]string{{"oslo"}, {""}, {"bergen"}},
	)
	got, err := frame.TextColumn("city")
	if err != nil {
		t.Fatalf("TextColumn failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"oslo", "bergen"}) {
		t.Errorf("Expected non-null texts, got %v", got)
	}
	if _, err := frame.TextColumn("missing"); err == nil {
		t.Error("Expected error for unknown column")
	}
}

func TestFloatColumnUnknownName(t *testing.T) {
	frame := testFrame()
	if _, err := frame.FloatColumn("missing"); err == nil {
		t.Error("Expected error for unknown column")
	}
}

func TestIntegerCellsKeepSourceText(t *testing.T) {
	// Integer source text must survive display, search, and export
	// verbatim; 1000000 never becomes 1e+06.
	frame := NewFrameFromStrings(
		[]string{"id"},
		[][]string{{"1000000"}, {"2500000"}},
	)
	if frame.Kinds()[0] != KindNumber {
		t.Fatalf("Integer column should be numeric, got %v", frame.Kinds()[0])
	}
	if got := frame.Row(0)[0].Text(); got != "1000000" {
		t.Errorf("Expected \"1000000\", got %q", got)
	}
	if got := frame.Row(1)[0].Text(); got != "2500000" {
		t.Errorf("Expected \"2500000\", got %q", got)
	}
}

func TestLargeIntegerPrecision(t *testing.T) {
	// 2^53+1 is not representable as float64; the integer cell keeps it
	// exact for text, ordering, and equality.
	const big = int64(9007199254740993)
	if got := Int(big).Text(); got != "9007199254740993" {
		t.Errorf("Expected exact text, got %q", got)
	}
	// Neighbours that collapse under float64 still order correctly.
	if compareValues(Int(big), Int(big-1), KindNumber) != 1 {
		t.Error("2^53+1 should sort after 2^53")
	}
	if compareValues(Int(big), Int(big), KindNumber) != 0 {
		t.Error("Equal integers should compare equal")
	}
}

func TestFloatTextAvoidsScientificNotation(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Number(1000000.5), "1000000.5"},
		{Number(1e6), "1000000"},
		{Number(0), "0"},
		{Number(1e300), "1e+300"}, // extreme magnitudes stay compact
	}
	for _, c := range cases {
		if got := c.v.Text(); got != c.want {
			t.Errorf("Text() = %q, expected %q", got, c.want)
		}
	}
}

func TestValueText(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{String("s"), "s"},
		{Number(2.5), "2.5"},
		{Number(3), "3"},
		{Bool(true), "true"},
		{Time(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)), "2024-03-01 12:30:00"},
	}
	for _, c := range cases {
		if got := c.v.Text(); got != c.want {
			t.Errorf("Text() = %q, expected %q", got, c.want)
		}
	}
}
