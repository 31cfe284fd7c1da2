// Package huffman implements Huffman codes over arbitrary comparable symbols,
// packed into bounded bit blocks.
//
// Codes are canonical: the tree built from symbol frequencies only decides
// the bit length of each symbol's code, and the codes themselves are then
// assigned in (length, first appearance) order.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
