/*
Package intarna predicts energetically favorable hybridization
interactions between two single-stranded RNA molecules.

Given a query and a target sequence it enumerates candidate
intermolecular base-pair patterns, scores each with a nearest-neighbor
free-energy model combined with intramolecular accessibility
penalties, and reports the interactions of lowest free energy (or,
via the Ens predictor family, a Boltzmann partition function over the
whole interaction ensemble).

The module is organized as one package per concern, following the
shape of the single-molecule folding engine this one grew out of:

	rna            IUPAC sequence, complementarity, index mapping
	idxrange        IndexRange / IndexRangeList interval bookkeeping
	accessibility   ED accessibility penalties and constraints
	energy          the InteractionEnergy façade and its implementations
	interaction     Interaction / InteractionRange result types
	seed            mandatory-seed subsystem
	helix           maximal-helix subsystem
	predictor       the coupled DP interaction predictors
	output          reporting callbacks and base-pair-probability tracking

This root package only holds the shared error taxonomy and physical
constants used across those packages.
*/
package intarna
