// Package quant maps continuous track parameters onto small integers.
//
// Magnitudes are quantized either linearly against a peak reference or on a
// log1p scale. Phases are quantized either absolutely over [-pi, pi) or as a
// wrapped difference from a predicted phase. Every quantizer has an exact
// inverse scale: Dequantize(Quantize(x)) is the reconstruction the decoder
// will produce, so encoders can track decoder state by dequantizing their own
// output.
package quant
