// SPDX-License-Identifier: EPL-2.0

package sound

import "github.com/ik5/audiocue/utils"

// AdjustableVolume multiplies every sample by a volume factor. 1.0 leaves
// samples unchanged; results saturate at the int16 bounds.
type AdjustableVolume struct {
	inner  Stage
	volume float32
}

func NewAdjustableVolume(inner Stage, volume float32) *AdjustableVolume {
	return &AdjustableVolume{inner: inner, volume: volume}
}

func (v *AdjustableVolume) Channels() int            { return v.inner.Channels() }
func (v *AdjustableVolume) SampleRate() int          { return v.inner.SampleRate() }
func (v *AdjustableVolume) OnBatchStart()            { v.inner.OnBatchStart() }
func (v *AdjustableVolume) Inner() Stage             { return v.inner }
func (v *AdjustableVolume) SetVolume(volume float32) { v.volume = volume }
func (v *AdjustableVolume) Volume() float32          { return v.volume }

func (v *AdjustableVolume) Next() (Next, error) {
	n, err := v.inner.Next()
	if err != nil || n.Kind != KindSample || v.volume == 1 {
		return n, err
	}
	return Sample(utils.ScaleInt16(n.Sample, v.volume)), nil
}
