package chore

import "chore-tracker/internal/domain/ownership"

type Repository = ownership.Repository[Chore]
