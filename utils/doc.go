// SPDX-License-Identifier: EPL-2.0

// Package utils holds per-sample helpers shared by the codecs, the
// resampler and the outputs.
package utils
