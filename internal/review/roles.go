package review

import "github.com/hireloop/panelist/internal/domain"

// roleProfile carries the role-specific prompt material for one panelist.
// The two-pass protocol is identical across roles; only the evaluation
// lens changes, so the differences live in data rather than in per-role
// code paths.
type roleProfile struct {
	// FocusAreas is the bulleted "your role focuses on" block.
	FocusAreas string

	// ScoringGuidance interprets the 0..5 scale through the role's lens.
	ScoringGuidance string

	// EmphasisNotes carries additional directives, such as the technical
	// reviewer's toy-demo skepticism or the compliance reviewer's
	// risk-not-legal framing. Empty for roles without extra directives.
	EmphasisNotes string
}

var roleProfiles = map[domain.AgentRole]roleProfile{
	domain.RoleHR: {
		FocusAreas: `- Seniority signals: does the candidate's experience match their claimed level?
- Leadership and collaboration: evidence of team leadership, mentorship, cross-functional work
- Communication clarity: is the resume well-written, clear, and professional?
- Career trajectory: does the progression make sense? Any red flags?
- Cultural fit indicators: alignment with company values, work style, domain interest`,
		ScoringGuidance: `- Score 0: no evidence or poor evidence; contradictory claims; missing must-have signals
- Score 1-2: minimal evidence; mostly unsupported claims; significant gaps
- Score 3: some evidence but limited depth; partially supported claims; adequate but not strong
- Score 4: strong evidence with minor gaps; well-supported claims; meets expectations
- Score 5: exceptional evidence across multiple sources; exceeds expectations; no significant gaps`,
	},
	domain.RoleTech: {
		FocusAreas: `- System and orchestration depth: complex coordination, state management, multi-component workflows
- Production readiness: deployment practices, monitoring, scale, error handling
- Reliability and guardrails: robustness, fallback strategies, observability
- Technical depth: framework expertise, system design, performance optimization
- Practical experience: hands-on implementation versus superficial toy demos`,
		ScoringGuidance: `- Score 0: no evidence of this skill; only mentions without implementation; contradictory claims
- Score 1-2: minimal evidence; tutorial-level only; mostly toy demos
- Score 3: some evidence but unclear production usage; lacks scale or depth
- Score 4: strong production evidence with minor gaps; clear scale indicators; solid implementation
- Score 5: exceptional production evidence; multiple scale indicators; deep technical implementation`,
		EmphasisNotes: `Red flags to watch for:
- "Built a ChatGPT clone" or framework-tutorial projects without production context: likely toy demo
- Vague claims such as "optimized performance" without metrics: potentially inflated
- Missing observability or monitoring for claimed production systems: suspicious
- Relevant experience confined to the last few months: limited depth

Production signals to reward:
- Specific scale: requests per second, data volumes, component counts in production
- Monitoring: tracing, dashboards, alerting on failures
- Reliability: retry logic, fallback strategies, circuit breakers, graceful degradation
- Real impact with numbers: cost savings, latency improvements, error-rate reductions

Avoid over-rating toy demos: be rigorous in distinguishing tutorial projects from production systems.`,
	},
	domain.RoleCompliance: {
		FocusAreas: `- PII handling awareness: does the candidate understand privacy considerations?
- Bias risk identification: awareness of fairness, bias, and ethical concerns in automated systems
- Security posture: security-conscious practices, data protection, access controls
- Data retention practices: understanding of data lifecycle and compliance requirements
- Risk assessment: identifying potential compliance or ethical risks in their experience`,
		ScoringGuidance: `- Score 0: no evidence of compliance awareness; red flags in data handling; privacy-blind practices
- Score 1-2: minimal awareness; superficial mentions only; significant compliance gaps
- Score 3: some awareness but superficial; mentions compliance without specifics
- Score 4: strong compliance awareness with minor gaps; specific privacy or security practices
- Score 5: exceptional awareness; specific practices; clear regulatory understanding; proactive mitigation`,
		EmphasisNotes: `This is a risk review, not legal advice. Assess awareness and practices; do not provide legal guidance or make final compliance determinations.

Positive signals:
- Mentions of GDPR, CCPA, SOC2, or other compliance frameworks
- PII anonymization, data minimization, or access controls
- Bias testing, fairness metrics, or ethical review practices
- Security consciousness: encryption, authentication, audit logging
- Data retention policies or right-to-be-forgotten implementations

Red flags:
- No mention of privacy or security despite working with sensitive data
- Automated decision systems built without discussing bias or fairness
- Practices that could violate privacy regulations, such as indefinite data retention

Treat the absence of compliance considerations in relevant work as negative evidence: for low scores, evidence may cite the absence of compliance mentions with an interpretation.`,
	},
	domain.RoleProduct: {
		FocusAreas: `- User impact: evidence that their work changed outcomes for real users
- Product sense: judgment about what to build and why, not just how
- Metric literacy: fluency with adoption, retention, conversion, or cost metrics
- Scope judgment: cutting scope sensibly, shipping iteratively, sequencing bets
- Cross-functional fluency: working with design, data, and business stakeholders`,
		ScoringGuidance: `- Score 0: no evidence of product thinking; purely task-execution framing
- Score 1-2: minimal evidence; features listed without outcomes or reasoning
- Score 3: some outcome orientation but thin metrics or unclear personal judgment
- Score 4: strong evidence of product judgment with concrete outcomes and minor gaps
- Score 5: exceptional product judgment; repeated outcome-backed decisions with clear metrics`,
	},
}

// profileFor returns the prompt material for a role. Unknown roles fall
// back to the HR profile; input validation upstream makes that unreachable
// in practice.
func profileFor(role domain.AgentRole) roleProfile {
	if p, ok := roleProfiles[role]; ok {
		return p
	}
	return roleProfiles[domain.RoleHR]
}
