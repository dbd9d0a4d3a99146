// Package sink provides the feature output boundary: persistence of
// keyed feature matrices. The pipeline core is agnostic to the
// serialization; sinks are explicit handles released via Close on
// every exit path.
package sink

import "github.com/RyanBlaney/mfcc-extract/pkg/mfcc"

// Sink accepts keyed feature matrices for persistence. Write calls are
// sequential; Close flushes and releases the underlying resource and
// must be called on all exit paths, including after a Write error.
type Sink interface {
	Write(key string, m *mfcc.FeatureMatrix) error
	Close() error
}
