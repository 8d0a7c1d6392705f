package nullable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		text     string
		expected *float64
		fails    bool
	}{
		{text: "", expected: nil},
		{text: "7,5", expected: Float(7.5)},
		{text: "6", expected: Float(6)},
		{text: "11,5", expected: Float(11.5)},
		{text: "7.5", expected: Float(7.5)},
		{text: "-1,5", expected: Float(-1.5)},
		{text: "s.v.", fails: true},
		{text: "6,5,5", fails: true},
	}

	for _, test := range testCases {
		got, err := ParseDecimal(test.text)
		if test.fails {
			require.Error(t, err, "input %q", test.text)
			continue
		}
		require.NoError(t, err, "input %q", test.text)
		if test.expected == nil {
			require.Nil(t, got, "input %q", test.text)
			continue
		}
		require.NotNil(t, got, "input %q", test.text)
		require.Equal(t, *test.expected, *got)
	}
}

func TestSafeDivide(t *testing.T) {
	require.Nil(t, SafeDivide(3, 0))
	require.Nil(t, SafeDivide(0, 0))
	require.Equal(t, 0.75, *SafeDivide(3, 4))
	require.Equal(t, 0.33, *SafeDivide(1, 3))
	require.Equal(t, 2.0, *SafeDivide(4, 2))
}

func TestSafeMedian(t *testing.T) {
	require.Nil(t, SafeMedian(nil))
	require.Nil(t, SafeMedian([]*float64{}))
	require.Nil(t, SafeMedian([]*float64{nil, nil}))
	require.Equal(t, 6.5, *SafeMedian([]*float64{Float(6), Float(7), nil}))
	require.Equal(t, 7.0, *SafeMedian([]*float64{Float(7)}))
	require.Equal(t, 6.0, *SafeMedian([]*float64{Float(5), Float(6), Float(8)}))
	// order must not matter
	require.Equal(t, 6.0, *SafeMedian([]*float64{Float(8), Float(5), Float(6)}))
}
