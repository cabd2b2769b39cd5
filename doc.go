/*
Package ssnfs implements a stateful network file server in pure Go. Each user owns
a private namespace of fixed-size files stored as contiguous extents inside a single
block image. Metadata is written through to the image on every mutation, and all
requests are executed one at a time by a single scheduler goroutine.
*/
package ssnfs
