package stream

import (
	"log/slog"
)

// BuilderOption configures Builder behavior.
type BuilderOption func(*builderOpts)

type builderOpts struct {
	logger   *slog.Logger
	features map[Feature]bool
}

// WithLogger sets the logger used to report rejected writes at debug
// level. If unset, slog.Default() is used.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(opts *builderOpts) {
		opts.logger = l
	}
}

// WithFeatures records generator features requested by a producer.
//
// None of the features change what the Builder does. They exist so that
// producers written against a text generator can pass their configuration
// through and read it back with Builder.Enabled.
func WithFeatures(fs ...Feature) BuilderOption {
	return func(opts *builderOpts) {
		for _, f := range fs {
			opts.features[f] = true
		}
	}
}

// Feature enumerates text generator features. The Builder produces values,
// not text, so every feature is currently unused.
type Feature int

const (
	// FeatureAutoClose would close open containers on Close.
	FeatureAutoClose Feature = iota
	// FeatureQuoteFieldNames would quote object keys.
	FeatureQuoteFieldNames
	// FeatureNumbersAsStrings would write numbers as strings.
	FeatureNumbersAsStrings
	// FeatureEscapeNonASCII would escape non ASCII text.
	FeatureEscapeNonASCII
	// FeatureStrictDuplicates would reject repeated object keys.
	FeatureStrictDuplicates
)

func (f Feature) String() string {
	switch f {
	case FeatureAutoClose:
		return "auto-close"
	case FeatureQuoteFieldNames:
		return "quote-field-names"
	case FeatureNumbersAsStrings:
		return "numbers-as-strings"
	case FeatureEscapeNonASCII:
		return "escape-non-ascii"
	case FeatureStrictDuplicates:
		return "strict-duplicates"
	default:
		return "unknown"
	}
}
