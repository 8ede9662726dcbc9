// Package ffmpeg builds and executes the ffmpeg command for a single audio
// conversion and classifies its stderr into typed errors.
//
// The argument skeleton is fixed: quiet preamble, input demuxer hint, first
// audio stream only, metadata copied, target bitrate, optional codec with
// its extra parameters, explicit output muxer, overwrite.
package ffmpeg
