// Package uniuri generates random strings from crypto/rand without modulo bias.
package uniuri
