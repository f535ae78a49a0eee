// Package sqlite provides a durable local cache of the territorial
// reference dataset so repeat runs can skip the network fetch.
package sqlite
