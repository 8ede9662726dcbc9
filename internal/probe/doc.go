// Package probe reports the sample rate, channel count and duration of an
// audio file. WAV headers are read with go-audio/wav and MP3 frames with
// go-mp3; other containers use one ffprobe JSON call.
package probe
