package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TasksStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "todo_tasks_stored",
			Help: "Number of tasks currently held in memory",
		},
	)
	TaskOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_task_operations_total",
			Help: "Successful task mutations by action",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(TasksStored)
	prometheus.MustRegister(TaskOperations)
}
