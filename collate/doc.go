// Package collate turns variable-shape documents into rectangular batches.
//
// A Document is a list of sentences and a Sentence is a list of word
// vocabulary indices. Documents in the same batch rarely agree on either
// dimension, so before they can be embedded and fed to a sequence model they
// are padded into a single [batch, sentences, words] block:
//
//	in:  ([[1 2] [3]], 0), ([[4]], 1)      pad = 0
//	out: [[[1 2] [3 0]]  [[4 0] [0 0]]]    labels = [0 1]
//
// Padding dimensions are recomputed for every batch from that batch alone, so
// the same document may be padded differently depending on which batch it
// lands in.
//
// Collation is a pure function of its input. A single Collator can be shared
// by any number of goroutines.
package collate
