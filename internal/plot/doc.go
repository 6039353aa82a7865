// Package plot turns byte grids into colorized animation frames.
//
// A [Figure] is the plotting backend of a playback session: each call to
// [Figure.Plot] maps samples through a named colormap into an
// [image.Paletted], draws the title in a banner above the grid and keeps the
// frame, so a whole session can later be encoded as an animated GIF.
//
// Palettes hold [Levels] gradient entries plus two banner colors, which keeps
// every frame within the 256 color limit of GIF.
package plot
