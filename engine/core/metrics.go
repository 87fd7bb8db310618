package core

import "github.com/YannUFLL/HumanGL/engine/containers"

const AVG_COUNT uint8 = 30

// FrameMetrics keeps a rolling average of frame times and a per-second FPS count.
type FrameMetrics struct {
	msTimes            *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{
		msTimes: containers.NewRingQueue[float64](int(AVG_COUNT)),
	}
}

// Update records one frame that took frameElapsedTime seconds.
func (fm *FrameMetrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	fm.msTimes.Push(frameMS)
	sum := 0.0
	fm.msTimes.Each(func(ms float64) { sum += ms })
	fm.msAvg = sum / float64(fm.msTimes.Len())

	// Count all frames, then roll the FPS figure over every full second.
	fm.frames++
	fm.accumulatedFrameMS += frameMS
	if fm.accumulatedFrameMS > 1000 {
		fm.fps = float64(fm.frames)
		fm.accumulatedFrameMS -= 1000
		fm.frames = 0
	}
}

func (fm *FrameMetrics) FPS() float64 {
	return fm.fps
}

// FrameTime is the average frame time in milliseconds over the last AVG_COUNT frames.
func (fm *FrameMetrics) FrameTime() float64 {
	return fm.msAvg
}

func (fm *FrameMetrics) Frame() (float64, float64) {
	return fm.fps, fm.msAvg
}
