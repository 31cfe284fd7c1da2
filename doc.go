// Package squeeze is a small family of lossless compression codecs that share
// one capability interface:
//
//   - huffman: prefix-free codes built from symbol frequencies, packed into
//     bounded bit blocks
//   - lz77: sliding-window back-references
//   - lzw: adaptive dictionary codes
//   - deflate: lz77 tokens entropy-coded with huffman
//
// Every codec works on slices of any comparable symbol type.  The store
// package persists encoded blocks and code tables.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/LZ77_and_LZ78>
//
//     <https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv%E2%80%93Welch>
//
package squeeze
