// Package tools defines the callable tool abstractions: tools and prompts with
// descriptive tags and annotations, and the groups that publish them.
package tools
