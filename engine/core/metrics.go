package core

import "sync"

const AVG_COUNT uint8 = 30

// MetricsState keeps a rolling average of frame times and the
// resulting frames-per-second figure.
type MetricsState struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			MStimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

// MetricsUpdate folds one frame's elapsed time (seconds) into the
// rolling averages.
func MetricsUpdate(frameElapsedTime float64) {
	if metricsState == nil {
		return
	}

	frameMS := frameElapsedTime * 1000.0
	metricsState.MStimes[metricsState.FrameAVGCounter] = frameMS
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter = (metricsState.FrameAVGCounter + 1) % AVG_COUNT

	metricsState.AccumulatedFrameMS += frameMS
	metricsState.Frames++
	if metricsState.AccumulatedFrameMS >= 1000.0 {
		metricsState.FPS = float64(metricsState.Frames) * 1000.0 / metricsState.AccumulatedFrameMS
		metricsState.Frames = 0
		metricsState.AccumulatedFrameMS = 0
	}
}

// MetricsFPS returns the most recent frames-per-second figure.
func MetricsFPS() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.FPS
}

// MetricsFrameAverageMS returns the rolling average frame time in
// milliseconds.
func MetricsFrameAverageMS() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.MSavg
}
