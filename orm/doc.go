/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Keys are joined with the bucket name, so two buckets never collide.
* Sequences hand out monotonically increasing keys that are never reused.

Values are protobuf messages serialized with gogo/protobuf.
*/
package orm
