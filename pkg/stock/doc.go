// Package stock tells whether a Breath of the Wild game file differs from
// the stock file shipped with the game.
//
// The detector is keyed on canonical resource paths (see package canon) and
// holds the stock hash table of one platform: Wii U 1.5.0 or Switch 1.6.0.
// Content that starts with the Yaz0 magic is decompressed before it is
// fingerprinted, so both the compressed and the decompressed form of a
// stock file are recognized.
//
// # Concurrency Safety
//
// A Detector never changes after construction. A single instance may be
// shared by any number of goroutines without locking; checking many files
// in parallel is a matter of calling IsModified from each worker.
//
// # Usage
//
//	d := stock.New(stock.Switch)
//	name, ok := canon.Canonicalize("01007EF00011E000/romfs/Actor/ActorInfo.product.sbyml")
//	if ok && d.IsModified(name, data, true) {
//	    // file changed, or is not part of the stock game
//	}
package stock
