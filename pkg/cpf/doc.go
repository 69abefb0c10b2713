// Package cpf validates Brazilian individual taxpayer identifiers (Cadastro de
// Pessoas Físicas).
//
// A CPF is 11 decimal digits where the last two are check digits computed with
// a weighted modulo-11 sum. Input may carry any formatting ("529.982.247-25",
// "529 982 247 25"); every character outside '0'..'9' is discarded before
// validation.
//
// All functions are pure and safe for concurrent use. Validate never panics
// and reports every rejection as false; Check exposes which rule failed for
// diagnostics only.
package cpf
