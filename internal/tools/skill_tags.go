package tools

import (
	"context"
	"log"
)

// SkillTagsArgs are the declared arguments of the getSkillTags tool.
type SkillTagsArgs struct {
	Department string `json:"department"`
}

// SkillTagsResult maps employee id to skill tags. On a data-access failure
// Success is false and the mapping is empty; the loop continues either way.
type SkillTagsResult struct {
	Success   bool                `json:"success"`
	SkillTags map[string][]string `json:"skillTags"`
	Error     string              `json:"error,omitempty"`
}

func (r *Registry) getSkillTags(ctx context.Context, rawArgs string) SkillTagsResult {
	var args SkillTagsArgs
	decodeArgs(rawArgs, &args)

	tags, err := r.store.SkillTagsByDepartment(ctx, args.Department)
	if err != nil {
		log.Printf("[tools] getSkillTags lookup failed: %v", err)
		return SkillTagsResult{Success: false, SkillTags: map[string][]string{}, Error: "skill tag lookup failed"}
	}
	if tags == nil {
		tags = map[string][]string{}
	}
	return SkillTagsResult{Success: true, SkillTags: tags}
}
