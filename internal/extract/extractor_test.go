package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iconidentify/shortsnext/internal/domain"
)

func TestRegistry_Get(t *testing.T) {
	seq := NewSequenceExtractor(testLogger())
	scan := NewIDScanExtractor(true)
	r := NewRegistry(seq, scan)

	got, err := r.Get(StrategyScan)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != scan {
		t.Error("Get(scan) returned the wrong extractor")
	}

	if _, err := r.Get(StrategyRPC); !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Errorf("Get(rpc) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestRegistry_Strategies(t *testing.T) {
	r := NewRegistry(
		NewIDScanExtractor(true),
		NewRPCReplayExtractor(&fakePoster{}, testInnerTubeConfig(), testLogger()),
		NewSequenceExtractor(testLogger()),
	)

	want := []Strategy{StrategyRPC, StrategyScan, StrategySequence}
	if got := r.Strategies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strategies() = %v, want %v", got, want)
	}
}
