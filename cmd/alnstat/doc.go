// 8 Nov 2024

/*
Alnstat reads multiple sequence alignments in fasta format and reports on
them or edits them.

Usage:

	alnstat command [flags] [infile]

Commands which report:

	stats    number of sequences, length, neff, diversity, mean dissimilarity
	freq     per column coverage and entropy, optionally a chimera attribute file
	weights  weight of each sequence and neff
	lengths  gene id, species and ungapped length of each sequence
	count    number of sequences in files, without reading them
	plot     png figure of coverage per column

Commands which edit and write fasta:

	filter   remove sequences by identity and gap content
	trim     keep a range of columns
	sort     order by id or by sequence
	squash   remove columns where a reference sequence has a gap
	ungap    remove all gaps

and randaln writes random sequences for testing.

Settings are read from alnstat.yaml if it is present, for example

	weights:
	  identity: 0.8
	filter:
	  min-id: 0.3
	  max-id: 0.9
	gapped:
	  min-prop: 0
	  max-prop: 0.9
	plot:
	  width: 800
	  height: 300
	  dpi: 72

Flags override the settings file.
*/
package main
