package user

type ServiceGroup struct {
	MatcherService    IMatcherService
	SessionService    ISessionService
	EscalationService IEscalationService
	Validator         IValidator
}

func NewServiceGroup() ServiceGroup {
	matcher := NewMatcherService()
	return ServiceGroup{
		MatcherService:    matcher,
		SessionService:    NewSessionService(matcher),
		EscalationService: &EscalationService{},
		Validator:         &Validator{},
	}
}
