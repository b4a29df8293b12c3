// Package feed loads skill label feeds from local files or HTTP sources.
//
// A feed is JSON: either a bare array of strings, or an object with a
// "skills" array. Labels are validated and deduplicated on parse, so
// downstream packing always sees a clean pool.
package feed
