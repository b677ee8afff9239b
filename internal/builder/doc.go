/*
Package builder is responsible for the one-shot construction of the navigation
tree. It acts as the bridge between the level geometry (platforms supplied by
the physics world) and the search layer (the 'search' and 'graph' packages).

The primary artifact is a populated root *node.Node.

The construction is a multi-phase process, repeated for every platform in
order (static platforms first, then moving ones):

 1. Node Creation: A platform node is added under the root, bound to the
    platform's live body through its anchor. Its leaves are laid out across
    the top surface: a drop point just past each horizontal extreme and evenly
    spaced floor points in between.

 2. Internal Linking: Consecutive leaves on the same platform are joined with
    bidirectional walk edges.

 3. Cross Linking: The new platform is tested against every platform added
    before it, in both directions. Every leaf pair is checked at up to three
    positions per leaf (its current position and, for a platform on rails,
    its position at each rail endpoint) against the fall and jump predicates.
    A surviving leaf pair gets one edge, and the platform pair gets a high
    level edge.

The cross linking pass is quadratic in both platform and leaf count. It is a
one-time cost. Edges are never revisited, so geometry added later does not
prune edges created earlier.
*/
package builder
