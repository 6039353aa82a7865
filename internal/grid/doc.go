// Package grid decodes remote-sensing data files into 2-D byte grids.
//
// Two decoders are provided:
//
//   - [DecodeFlatBinary]: raw row-major uint8 samples after an optional header
//   - [DecodeImage]: pre-rendered raster images, reduced to luminance
//
// Both report [ErrNotFound] for a missing file and [ErrCorrupt] for a file
// whose contents do not match the expected layout. [ProbeShape] recovers a
// grid shape from datasets whose header carries its own dimensions.
package grid
