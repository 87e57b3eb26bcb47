package runtime

// preludeForms are evaluated in order into the root scope of every new
// evaluator. Functions made by fun close over its call scope, so its own
// formals carry a "__" prefix to keep them out of the way of user names.
var preludeForms = []string{
	`(def {nil} {})`,
	`(def {otherwise} true)`,
	`(def {fun} (\ {__sig __body} {def (head __sig) (\ (tail __sig) __body)}))`,

	`(fun {unpack f l} {eval (cons f l)})`,
	`(fun {pack f & xs} {f xs})`,
	`(def {curry} unpack)`,
	`(def {uncurry} pack)`,
	`(fun {flip f a b} {f b a})`,
	`(fun {comp f g x} {f (g x)})`,

	`(fun {fst l} {eval (head l)})`,
	`(fun {snd l} {eval (head (tail l))})`,
	`(fun {trd l} {eval (head (tail (tail l)))})`,

	`(fun {append a b} {
		if (== a nil) {b} {if (== b nil) {a} {join a b}}
	})`,

	`(fun {len l} {
		if (== l nil) {0} {+ 1 (len (tail l))}
	})`,
	`(fun {nth n l} {
		if (== n 0) {fst l} {nth (- n 1) (tail l)}
	})`,
	`(fun {last l} {nth (- (len l) 1) l})`,
	`(fun {take n l} {
		if (or (<= n 0) (== l nil)) {nil} {append (head l) (take (- n 1) (tail l))}
	})`,
	`(fun {drop n l} {
		if (or (<= n 0) (== l nil)) {l} {drop (- n 1) (tail l)}
	})`,
	`(fun {split n l} {list (take n l) (drop n l)})`,
	`(fun {elem x l} {
		if (== l nil) {false} {if (== (list x) (head l)) {true} {elem x (tail l)}}
	})`,

	`(fun {map f l} {
		if (== l nil) {nil} {cons (f (fst l)) (map f (tail l))}
	})`,
	`(fun {filter f l} {
		if (== l nil) {nil} {append (if (f (fst l)) {head l} {nil}) (filter f (tail l))}
	})`,
	`(fun {foldl f z l} {
		if (== l nil) {z} {foldl f (f z (fst l)) (tail l)}
	})`,
	`(fun {sum l} {foldl + 0 l})`,
	`(fun {product l} {foldl * 1 l})`,
	`(fun {reverse l} {
		if (== l nil) {nil} {append (reverse (tail l)) (head l)}
	})`,
}
