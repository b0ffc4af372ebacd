// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoded sample source used by the rest of
// audiocue, plus block converters for adapting a source to an output
// device.
//
//   - Source is a block reader of interleaved float32 samples in [-1,1]
//   - Registry maps file extensions to Decoders
//   - Resampler changes the sample rate with cubic interpolation
//   - MonoMixer averages all channels down to one
//
// Decoders for concrete file formats live under formats/. The per-sample
// effect chain (pan, volume, speed, ...) lives in package sound, which
// adapts a Source with sound.FromSource.
//
// # Converting for a device
//
// The oto engine opens one output context per process. When a pipeline
// does not match the device format it is converted block-wise:
//
//	res, err := audio.NewResampler(src, 48000)
//	if err != nil {
//	    return err
//	}
//	mono := audio.NewMonoMixer(res)
//
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// Resampler.ReadSamples requires len(dst) to be a multiple of the channel
// count and returns ErrInvalidDstSize otherwise. MonoMixer.ReadSamples
// treats len(dst) as a frame count.
package audio
