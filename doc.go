// Package core is the top-level facade over this module's two ordered
// collections: a balanced binary search tree (package bst) and a
// persistent, bit-partitioned indexed vector (package trievec). Most
// callers only need the types in this package; reach into bst,
// trievec, arena or pathcursor directly for the arena-backed BST
// binding, custom tag augmentations, or the traversal primitives
// themselves.
package core
